package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/loopdesk/escalate/internal/types"
)

func TestValidateCondition(t *testing.T) {
	tests := []struct {
		name    string
		cond    types.Condition
		wantErr error
	}{
		{
			name: "valid confidence lt",
			cond: types.Condition{Type: "confidence", Operator: "lt", Value: types.NumberValue(0.5)},
		},
		{
			name: "valid time between",
			cond: types.Condition{Type: "time", Operator: "between", Value: types.IntervalValue(22, 6)},
		},
		{
			name: "valid site in",
			cond: types.Condition{Type: "site", Operator: "in", Value: types.StringListValue("site-a")},
		},
		{
			name:    "unknown type",
			cond:    types.Condition{Type: "sentiment", Operator: "lt", Value: types.NumberValue(0.5)},
			wantErr: types.ErrUnknownConditionType,
		},
		{
			name:    "illegal operator",
			cond:    types.Condition{Type: "message", Operator: "between", Value: types.IntervalValue(0, 1)},
			wantErr: types.ErrOperatorNotAllowed,
		},
		{
			name:    "between without interval",
			cond:    types.Condition{Type: "confidence", Operator: "between", Value: types.NumberValue(0.5)},
			wantErr: types.ErrConditionValueShape,
		},
		{
			name:    "in without list",
			cond:    types.Condition{Type: "site", Operator: "in", Value: types.StringValue("site-a")},
			wantErr: types.ErrConditionValueShape,
		},
		{
			name:    "numeric eq with string value",
			cond:    types.Condition{Type: "confidence", Operator: "eq", Value: types.StringValue("0.5")},
			wantErr: types.ErrConditionValueShape,
		},
		{
			name:    "time eq unknown keyword",
			cond:    types.Condition{Type: "time", Operator: "eq", Value: types.StringValue("lunch_break")},
			wantErr: types.ErrUnknownTimeKeyword,
		},
		{
			name: "time eq off_hours",
			cond: types.Condition{Type: "time", Operator: "eq", Value: types.StringValue("off_hours")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCondition(tt.cond)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCondition() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCondition() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePredicate_ErrorsCarryConditionIndex(t *testing.T) {
	p := types.Predicate{
		Logic: types.LogicAnd,
		Conditions: []types.Condition{
			{Type: "confidence", Operator: "lt", Value: types.NumberValue(0.5)},
			{Type: "sentiment", Operator: "lt", Value: types.NumberValue(0.5)},
		},
	}

	err := ValidatePredicate(p)
	if !errors.Is(err, types.ErrUnknownConditionType) {
		t.Fatalf("error = %v, want ErrUnknownConditionType", err)
	}
	if !strings.Contains(err.Error(), "condition 1") {
		t.Errorf("error %q should name the failing condition index", err)
	}
}

func TestValidatePredicate_Limits(t *testing.T) {
	p := types.Predicate{Logic: "nand"}
	if !errors.Is(ValidatePredicate(p), types.ErrUnknownLogic) {
		t.Error("unknown logic should be rejected")
	}

	many := make([]types.Condition, types.MaxPredicateConditions+1)
	for i := range many {
		many[i] = types.Condition{Type: "confidence", Operator: "lt", Value: types.NumberValue(0.5)}
	}
	if !errors.Is(ValidatePredicate(types.Predicate{Logic: types.LogicAnd, Conditions: many}), types.ErrTooManyConditions) {
		t.Error("over-limit condition count should be rejected")
	}

	bigSet := make([]string, types.MaxStringSetValues+1)
	for i := range bigSet {
		bigSet[i] = "site"
	}
	cond := types.Condition{Type: "site", Operator: "in", Value: types.StringListValue(bigSet...)}
	if !errors.Is(ValidateCondition(cond), types.ErrTooManySetValues) {
		t.Error("over-limit string set should be rejected")
	}
}

func TestValidateRule(t *testing.T) {
	valid := types.Rule{
		Name: "low confidence to slack",
		Predicate: types.Predicate{
			Logic: types.LogicAnd,
			Conditions: []types.Condition{
				{Type: "confidence", Operator: "lt", Value: types.NumberValue(0.5)},
			},
		},
		Destinations: []types.Destination{
			{Type: types.DestinationIntegration, IntegrationID: "intg-1"},
		},
	}
	if err := ValidateRule(valid); err != nil {
		t.Errorf("ValidateRule() error = %v, want nil", err)
	}

	unnamed := valid
	unnamed.Name = ""
	if !errors.Is(ValidateRule(unnamed), types.ErrRuleName) {
		t.Error("unnamed rule should be rejected")
	}

	twoTargets := valid
	twoTargets.Destinations = []types.Destination{
		{Type: types.DestinationEmail, Email: "a@b.c", WebhookURL: "https://x"},
	}
	if !errors.Is(ValidateRule(twoTargets), types.ErrDestinationIdentifiers) {
		t.Error("destination with two identifiers should be rejected")
	}

	longTemplate := valid
	longTemplate.Destinations = []types.Destination{
		{Type: types.DestinationEmail, Email: "a@b.c", Template: strings.Repeat("x", types.MaxTemplateLength+1)},
	}
	if !errors.Is(ValidateRule(longTemplate), types.ErrTemplateTooLong) {
		t.Error("oversized template should be rejected")
	}
}
