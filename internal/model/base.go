package model

import (
	"fmt"
	"time"
)

// JSONMap represents a generic JSON object
type JSONMap map[string]interface{}

// NewRecordID returns a millisecond-resolution identifier with the given
// prefix. Uniqueness is best-effort; the store does not enforce it.
func NewRecordID(prefix string, now time.Time) string {
	if prefix == "" {
		return fmt.Sprintf("%d", now.UnixMilli())
	}
	return fmt.Sprintf("%s_%d", prefix, now.UnixMilli())
}

// ParseTimestamp parses an ISO 8601 timestamp, accepting a trailing 'Z'.
// Invalid or empty input falls back to the current UTC time.
func ParseTimestamp(value string) time.Time {
	if value == "" {
		return time.Now().UTC()
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}
