package engine

import (
	"fmt"

	"github.com/loopdesk/escalate/internal/types"
)

/*
 * Construction-time rule validation.
 *
 * Validates rules when they enter the system (authoring API, add-rule CLI,
 * store insert) so configuration errors surface at edit time. The evaluator
 * repeats the same checks defensively per leaf because stored rules can
 * outlive registry changes; validation here moves error detection earlier,
 * it does not replace the evaluation-time guard.
 */

// ValidateCondition checks a condition against the registry: known type,
// legal operator, and a value shape that fits the operator and the type's
// declared value kind.
func ValidateCondition(cond types.Condition) error {
	ct, ok := ConditionTypeFor(cond.Type)
	if !ok {
		return fmt.Errorf("%w: %q", types.ErrUnknownConditionType, cond.Type)
	}

	op := Operator(cond.Operator)
	if !ct.Allows(op) {
		return fmt.Errorf("%w: %q on %q", types.ErrOperatorNotAllowed, cond.Operator, cond.Type)
	}

	return validateValueShape(ct, op, cond.Value)
}

// validateValueShape enforces the operator's expected value shape. The
// operator decides the shape (between wants an interval, in wants a set);
// the condition type's value kind decides how eq/ne scalars are typed.
func validateValueShape(ct ConditionType, op Operator, val types.Value) error {
	switch op {
	case OpBetween:
		if val.Kind != types.ValueInterval {
			return fmt.Errorf("%w: between requires a [low, high] interval", types.ErrConditionValueShape)
		}
		return nil

	case OpIn, OpNotIn:
		if val.Kind != types.ValueStringList {
			return fmt.Errorf("%w: %s requires a string set", types.ErrConditionValueShape, op)
		}
		if len(val.List) > types.MaxStringSetValues {
			return types.ErrTooManySetValues
		}
		return nil

	case OpContains, OpNotContains:
		if val.Kind != types.ValueString {
			return fmt.Errorf("%w: %s requires a string", types.ErrConditionValueShape, op)
		}
		return nil

	case OpLt, OpLte, OpGt, OpGte:
		if val.Kind != types.ValueNumber {
			return fmt.Errorf("%w: %s requires a number", types.ErrConditionValueShape, op)
		}
		return nil

	case OpEq, OpNe:
		switch ct.ValueKind {
		case KindNumber:
			if val.Kind != types.ValueNumber {
				return fmt.Errorf("%w: %s on %s requires a number", types.ErrConditionValueShape, op, ct.Name)
			}
		default:
			if val.Kind != types.ValueString {
				return fmt.Errorf("%w: %s on %s requires a string", types.ErrConditionValueShape, op, ct.Name)
			}
			if ct.Name == "time" && val.Str != TimeBusinessHours && val.Str != TimeOffHours {
				return fmt.Errorf("%w: %q", types.ErrUnknownTimeKeyword, val.Str)
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", types.ErrOperatorNotAllowed, op)
	}
}

// ValidatePredicate checks the logic operator, the condition count limit,
// and every condition. Returns the first error with its condition index for
// inline display in the authoring surface.
func ValidatePredicate(p types.Predicate) error {
	switch p.Logic {
	case types.LogicAnd, types.LogicOr, "":
	default:
		return fmt.Errorf("%w: %q", types.ErrUnknownLogic, p.Logic)
	}

	if len(p.Conditions) > types.MaxPredicateConditions {
		return types.ErrTooManyConditions
	}

	for i, cond := range p.Conditions {
		if err := ValidateCondition(cond); err != nil {
			return fmt.Errorf("condition %d: %w", i, err)
		}
	}
	return nil
}

// ValidateRule checks the rule's name, predicate, and destination list.
// An empty predicate is accepted here (it simply never fires); an empty
// destination list is likewise legal, the rule then matches without
// producing deliveries.
func ValidateRule(r types.Rule) error {
	if r.Name == "" {
		return types.ErrRuleName
	}

	if err := ValidatePredicate(r.Predicate); err != nil {
		return err
	}

	if len(r.Destinations) > types.MaxRuleDestinations {
		return types.ErrTooManyDestinations
	}
	for i, dest := range r.Destinations {
		if err := dest.Validate(); err != nil {
			return fmt.Errorf("destination %d: %w", i, err)
		}
		if len(dest.Template) > types.MaxTemplateLength {
			return fmt.Errorf("destination %d: %w", i, types.ErrTemplateTooLong)
		}
	}
	return nil
}
