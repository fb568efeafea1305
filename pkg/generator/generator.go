// Package generator defines the external text-generation contract used by
// the report composer. Implementations are injected so tests can substitute
// deterministic stubs.
package generator

import "context"

// Generator produces freeform narrative text from system instructions and a
// structured payload. Any failure (timeout, auth, quota, malformed
// response) is returned as an error and recovered by the caller.
type Generator interface {
	Generate(ctx context.Context, systemInstructions string, payload interface{}) (string, error)
}
