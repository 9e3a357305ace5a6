package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/loopdesk/escalate/internal/types"
)

func TestCompare_NumericOperators(t *testing.T) {
	tests := []struct {
		name string
		op   Operator
		fact any
		val  types.Value
		want bool
	}{
		{"lt_true", OpLt, 0.3, types.NumberValue(0.5), true},
		{"lt_false", OpLt, 0.5, types.NumberValue(0.5), false},
		{"lte_boundary", OpLte, 0.5, types.NumberValue(0.5), true},
		{"gt_true", OpGt, 0.9, types.NumberValue(0.5), true},
		{"gt_false", OpGt, 0.5, types.NumberValue(0.5), false},
		{"gte_boundary", OpGte, 0.5, types.NumberValue(0.5), true},
		{"eq_numeric_true", OpEq, 0.5, types.NumberValue(0.5), true},
		{"eq_numeric_false", OpEq, 0.5, types.NumberValue(0.6), false},
		{"ne_numeric_true", OpNe, 0.5, types.NumberValue(0.6), true},
		{"ne_numeric_false", OpNe, 0.5, types.NumberValue(0.5), false},
		{"lt_numeric_string_fact", OpLt, "0.3", types.NumberValue(0.5), true},
		{"lt_int_fact", OpLt, 3, types.NumberValue(5), true},
		{"lt_nan_fact", OpLt, math.NaN(), types.NumberValue(0.5), false},
		{"gt_nan_target", OpGt, 0.5, types.NumberValue(math.NaN()), false},
		{"lt_uncoercible_fact", OpLt, "not-a-number", types.NumberValue(0.5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.op, tt.fact, tt.val)
			if err != nil {
				t.Fatalf("Compare() error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("Compare(%s, %v, %s) = %v, want %v", tt.op, tt.fact, tt.val, got, tt.want)
			}
		})
	}
}

func TestCompare_StringOperators(t *testing.T) {
	tests := []struct {
		name string
		op   Operator
		fact any
		val  types.Value
		want bool
	}{
		{"contains_true", OpContains, "I want a refund", types.StringValue("refund"), true},
		{"contains_case_insensitive", OpContains, "I want a REFUND", types.StringValue("refund"), true},
		{"contains_false", OpContains, "hello", types.StringValue("refund"), false},
		{"not_contains_true", OpNotContains, "hello", types.StringValue("refund"), true},
		{"not_contains_false", OpNotContains, "refund please", types.StringValue("refund"), false},
		{"eq_string_case_sensitive", OpEq, "Alice@example.com", types.StringValue("alice@example.com"), false},
		{"eq_string_true", OpEq, "alice@example.com", types.StringValue("alice@example.com"), true},
		{"ne_string_true", OpNe, "bob@example.com", types.StringValue("alice@example.com"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.op, tt.fact, tt.val)
			if err != nil {
				t.Fatalf("Compare() error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("Compare(%s, %v, %s) = %v, want %v", tt.op, tt.fact, tt.val, got, tt.want)
			}
		})
	}
}

func TestCompare_ContainsNonStringFact(t *testing.T) {
	_, err := Compare(OpContains, 0.5, types.StringValue("refund"))
	if !errors.Is(err, types.ErrFactTypeMismatch) {
		t.Errorf("Compare(contains, 0.5, ...) error = %v, want ErrFactTypeMismatch", err)
	}
}

func TestCompare_Membership(t *testing.T) {
	sites := types.StringListValue("site-a", "site-b")

	tests := []struct {
		name string
		op   Operator
		fact any
		val  types.Value
		want bool
	}{
		{"in_true", OpIn, "site-a", sites, true},
		{"in_case_insensitive", OpIn, "SITE-A", sites, true},
		{"in_false", OpIn, "site-c", sites, false},
		{"not_in_true", OpNotIn, "site-c", sites, true},
		{"not_in_false", OpNotIn, "site-b", sites, false},
		{"in_numeric_fact", OpIn, 5, types.StringListValue("5", "7"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.op, tt.fact, tt.val)
			if err != nil {
				t.Fatalf("Compare() error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("Compare(%s, %v, %s) = %v, want %v", tt.op, tt.fact, tt.val, got, tt.want)
			}
		})
	}
}

func TestCompare_Between(t *testing.T) {
	tests := []struct {
		name string
		fact any
		val  types.Value
		want bool
	}{
		{"inside", 0.5, types.IntervalValue(0.3, 0.7), true},
		{"below", 0.2, types.IntervalValue(0.3, 0.7), false},
		{"upper_boundary_inclusive", 0.7, types.IntervalValue(0.3, 0.7), true},
		{"lower_boundary_inclusive", 0.3, types.IntervalValue(0.3, 0.7), true},
		{"inverted_numeric_never_matches", 0.5, types.IntervalValue(0.7, 0.3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(OpBetween, tt.fact, tt.val)
			if err != nil {
				t.Fatalf("Compare() error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("Compare(between, %v, %s) = %v, want %v", tt.fact, tt.val, got, tt.want)
			}
		})
	}
}

func TestCompare_TimeBetweenWrapsMidnight(t *testing.T) {
	overnight := types.IntervalValue(22, 6)

	tests := []struct {
		name string
		hour int
		want bool
	}{
		{"late_evening", 23, true},
		{"midday", 12, false},
		{"boundary_end_inclusive", 6, true},
		{"boundary_start_inclusive", 22, true},
		{"early_morning", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(OpBetween, timeOfDay{hour: tt.hour}, overnight)
			if err != nil {
				t.Fatalf("Compare() error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("Compare(between, hour=%d, [22,6]) = %v, want %v", tt.hour, got, tt.want)
			}
		})
	}
}

func TestCompare_TimeKeyword(t *testing.T) {
	tests := []struct {
		name string
		fact timeOfDay
		val  types.Value
		want bool
	}{
		{"off_hours_true", timeOfDay{hour: 23, offHours: true}, types.StringValue(TimeOffHours), true},
		{"off_hours_false", timeOfDay{hour: 10, offHours: false}, types.StringValue(TimeOffHours), false},
		{"business_hours_true", timeOfDay{hour: 10, offHours: false}, types.StringValue(TimeBusinessHours), true},
		{"business_hours_false", timeOfDay{hour: 23, offHours: true}, types.StringValue(TimeBusinessHours), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(OpEq, tt.fact, tt.val)
			if err != nil {
				t.Fatalf("Compare() error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("Compare(eq, %+v, %s) = %v, want %v", tt.fact, tt.val, got, tt.want)
			}
		})
	}
}

func TestCompare_TimeKeywordUnknown(t *testing.T) {
	_, err := Compare(OpEq, timeOfDay{hour: 10}, types.StringValue("lunch_break"))
	if !errors.Is(err, types.ErrUnknownTimeKeyword) {
		t.Errorf("error = %v, want ErrUnknownTimeKeyword", err)
	}
}

func TestCompare_ValueShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		op   Operator
		fact any
		val  types.Value
	}{
		{"between_without_interval", OpBetween, 0.5, types.NumberValue(0.5)},
		{"in_without_list", OpIn, "site-a", types.StringValue("site-a")},
		{"contains_without_string", OpContains, "hello", types.NumberValue(1)},
		{"lt_without_number", OpLt, 0.5, types.StringValue("0.5")},
		{"eq_against_list", OpEq, "x", types.StringListValue("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.op, tt.fact, tt.val)
			if !errors.Is(err, types.ErrConditionValueShape) {
				t.Errorf("error = %v, want ErrConditionValueShape", err)
			}
			if got {
				t.Error("result = true on shape error, want false")
			}
		})
	}
}

func TestCompare_UnknownOperator(t *testing.T) {
	_, err := Compare(Operator("regex"), "x", types.StringValue("x"))
	if !errors.Is(err, types.ErrOperatorNotAllowed) {
		t.Errorf("error = %v, want ErrOperatorNotAllowed", err)
	}
}
