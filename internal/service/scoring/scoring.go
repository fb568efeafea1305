// Package scoring turns 1-5 rating fields into 0-100 percentage scores.
package scoring

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/rehabtrack/rehab-api/internal/model"
)

// RatingScale is the maximum value of a single rating field.
const RatingScale = 5

// RatingFields are the assessment data keys that contribute to the overall
// assessment score.
var RatingFields = []string{
	"fineMotor_grip",
	"grossMotor_balance",
	"cognitive_approach",
	"emotional_quality",
	"communication_clarity",
	"communication_grammar",
}

// PercentageScore maps a set of ratings onto [0,100]:
// round(sum / (count*scale) * 100). An empty set scores 0. The result is
// independent of the order of values.
func PercentageScore(values []int, scale int) int {
	if len(values) == 0 || scale <= 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values)*scale) * 100))
}

// CoerceInt converts the loosely-typed values that arrive in assessment
// data maps. Non-convertible values report ok=false and are skipped by
// callers, never treated as errors.
func CoerceInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return int(f), true
		}
		return 0, false
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// CollectRatings pools the convertible values of the given keys from an
// assessment's data map, preserving key order.
func CollectRatings(data model.JSONMap, keys []string) []int {
	values := make([]int, 0, len(keys))
	for _, k := range keys {
		raw, ok := data[k]
		if !ok || raw == nil {
			continue
		}
		if v, ok := CoerceInt(raw); ok {
			values = append(values, v)
		}
	}
	return values
}

// AssessmentScore computes the overall 0-100 score for one assessment from
// its known rating fields.
func AssessmentScore(a *model.Assessment) int {
	if a == nil {
		return 0
	}
	return PercentageScore(CollectRatings(a.Data, RatingFields), RatingScale)
}
