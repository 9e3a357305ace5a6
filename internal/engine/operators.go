package engine

import (
	"math"
	"strings"

	"github.com/loopdesk/escalate/internal/types"
)

/*
 * Operator comparison logic.
 *
 * Implements the 11 condition operators as pure functions dispatched by a
 * switch. Facts arrive as the dynamic values produced by the registry's
 * accessors; condition values arrive as the tagged union fixed at decode
 * time, so each operator checks one tag instead of re-inspecting JSON shapes.
 *
 * Operators:
 *   - lt/lte/gt/gte: numeric comparison, both sides coerced to float64;
 *     anything that coerces to NaN (or does not coerce) compares false
 *   - eq/ne: numeric equality for numeric values, case-sensitive string
 *     equality otherwise; time eq matches the business_hours/off_hours
 *     keyword vocabulary
 *   - contains/not_contains: case-insensitive substring, string facts only
 *     (ErrFactTypeMismatch otherwise)
 *   - in/not_in: case-insensitive membership of the stringified fact in the
 *     condition's string set
 *   - between: inclusive [low, high]; hour-of-day facts wrap past midnight
 *     when low > high ([22, 6] covers 10PM-6AM), plain numerics do not
 *
 * Returned errors are diagnostics, never control flow: the evaluator records
 * them in the trace and scores the leaf false.
 *
 * Why function-based: one switch over 11 operators reads better than 11
 * single-method interface implementations with minimal behavior variation.
 */

// Operator identifies a comparison operator as stored in rule JSON.
type Operator string

const (
	OpLt          Operator = "lt"
	OpLte         Operator = "lte"
	OpGt          Operator = "gt"
	OpGte         Operator = "gte"
	OpEq          Operator = "eq"
	OpNe          Operator = "ne"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpIn          Operator = "in"
	OpNotIn       Operator = "not_in"
	OpBetween     Operator = "between"
)

// Time keyword vocabulary for time eq conditions.
const (
	TimeBusinessHours = "business_hours"
	TimeOffHours      = "off_hours"
)

// Compare applies op to a fact and a condition value. The returned error
// marks a configuration or type problem (wrong value shape, non-string fact
// for contains); the boolean is false whenever an error is returned.
func Compare(op Operator, fact any, val types.Value) (bool, error) {
	switch op {
	case OpLt:
		return compareOrdered(fact, val, func(cmp int) bool { return cmp < 0 })
	case OpLte:
		return compareOrdered(fact, val, func(cmp int) bool { return cmp <= 0 })
	case OpGt:
		return compareOrdered(fact, val, func(cmp int) bool { return cmp > 0 })
	case OpGte:
		return compareOrdered(fact, val, func(cmp int) bool { return cmp >= 0 })
	case OpEq:
		return compareEqual(fact, val)
	case OpNe:
		matched, err := compareEqual(fact, val)
		if err != nil {
			return false, err
		}
		return !matched, nil
	case OpContains:
		return compareContains(fact, val)
	case OpNotContains:
		matched, err := compareContains(fact, val)
		if err != nil {
			return false, err
		}
		return !matched, nil
	case OpIn:
		return compareIn(fact, val)
	case OpNotIn:
		matched, err := compareIn(fact, val)
		if err != nil {
			return false, err
		}
		return !matched, nil
	case OpBetween:
		return compareBetween(fact, val)
	default:
		return false, types.ErrOperatorNotAllowed
	}
}

// compareOrdered coerces both sides to float64 and applies pred to the
// three-way comparison. Facts that do not coerce, and NaN on either side,
// compare false without error: ordering against garbage is a non-match,
// not a configuration problem.
func compareOrdered(fact any, val types.Value, pred func(int) bool) (bool, error) {
	if val.Kind != types.ValueNumber {
		return false, types.ErrConditionValueShape
	}
	f, ok := toFloat64(fact)
	if !ok || math.IsNaN(f) || math.IsNaN(val.Number) {
		return false, nil
	}
	switch {
	case f < val.Number:
		return pred(-1), nil
	case f > val.Number:
		return pred(1), nil
	default:
		return pred(0), nil
	}
}

// compareEqual performs structural equality: numeric values compare
// numerically, string values compare case-sensitively. Time facts compare
// against the keyword vocabulary.
func compareEqual(fact any, val types.Value) (bool, error) {
	if tod, ok := fact.(timeOfDay); ok {
		return compareTimeKeyword(tod, val)
	}

	switch val.Kind {
	case types.ValueNumber:
		f, ok := toFloat64(fact)
		if !ok || math.IsNaN(f) || math.IsNaN(val.Number) {
			return false, nil
		}
		return f == val.Number, nil
	case types.ValueString:
		s, ok := toString(fact)
		if !ok {
			return false, nil
		}
		return s == val.Str, nil
	default:
		return false, types.ErrConditionValueShape
	}
}

// compareTimeKeyword matches a time fact against the controlled
// business_hours/off_hours vocabulary. Unknown keywords are a configuration
// error, not free-text comparison.
func compareTimeKeyword(tod timeOfDay, val types.Value) (bool, error) {
	if val.Kind != types.ValueString {
		return false, types.ErrConditionValueShape
	}
	switch val.Str {
	case TimeBusinessHours:
		return !tod.offHours, nil
	case TimeOffHours:
		return tod.offHours, nil
	default:
		return false, types.ErrUnknownTimeKeyword
	}
}

// compareContains performs case-insensitive substring search. Non-string
// facts are a type mismatch: substring search against a number is a
// misconfigured rule, surfaced in the trace rather than silently false.
func compareContains(fact any, val types.Value) (bool, error) {
	if val.Kind != types.ValueString {
		return false, types.ErrConditionValueShape
	}
	s, ok := fact.(string)
	if !ok {
		return false, types.ErrFactTypeMismatch
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(val.Str)), nil
}

// compareIn tests case-insensitive membership of the stringified fact in the
// condition's string set.
func compareIn(fact any, val types.Value) (bool, error) {
	if val.Kind != types.ValueStringList {
		return false, types.ErrConditionValueShape
	}
	s, ok := toString(fact)
	if !ok {
		return false, types.ErrFactTypeMismatch
	}
	for _, member := range val.List {
		if strings.EqualFold(s, member) {
			return true, nil
		}
	}
	return false, nil
}

// compareBetween checks low <= fact <= high, inclusive on both ends.
// Hour-of-day facts wrap past midnight when low > high; for plain numeric
// facts an inverted interval matches nothing.
func compareBetween(fact any, val types.Value) (bool, error) {
	if val.Kind != types.ValueInterval {
		return false, types.ErrConditionValueShape
	}

	if tod, ok := fact.(timeOfDay); ok {
		h := float64(tod.hour)
		if val.Low > val.High {
			// Overnight interval, e.g. [22, 6] = 10PM-6AM
			return h >= val.Low || h <= val.High, nil
		}
		return h >= val.Low && h <= val.High, nil
	}

	f, ok := toFloat64(fact)
	if !ok || math.IsNaN(f) {
		return false, nil
	}
	return f >= val.Low && f <= val.High, nil
}
