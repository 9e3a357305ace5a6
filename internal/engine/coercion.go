package engine

import (
	"strconv"
	"strings"
)

/*
 * Fact value coercion.
 *
 * Registry fact accessors produce a small closed set of dynamic types
 * (string, float64, int variants, timeOfDay), but the coercion helpers
 * accept the wider JSON-decoded family so contexts assembled from wire data
 * behave the same as ones built in process.
 *
 * Coercion failure is not an error at this layer: operators treat an
 * uncoercible fact as non-matching. The only hard type requirement
 * (contains wants a string fact) is enforced in the operator itself.
 */

// toFloat64 converts a fact to float64 for numeric comparison.
// Accepts numeric types, hour-of-day facts, and numeric strings
// (whitespace-trimmed); everything else reports ok=false.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case timeOfDay:
		return float64(n.hour), true
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// toString converts a fact to its string representation for equality and
// membership checks. Numbers format without trailing zeros so "0.5" and 0.5
// compare equal. Time facts have a keyword vocabulary, not a string form.
func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case bool:
		return strconv.FormatBool(s), true
	default:
		return "", false
	}
}
