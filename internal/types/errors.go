package types

import "errors"

// Sentinel errors for rule validation and evaluation diagnostics.
//
// Data-shape problems in stored rules are never fatal: the evaluator records
// them per-leaf in the trace and the resolver skips the offending destination
// with a reason. They are errors here so traces and validation share one
// vocabulary and callers can errors.Is against them.
var (
	// ErrUnknownConditionType indicates a condition references a type the
	// registry does not know.
	ErrUnknownConditionType = errors.New("unknown condition type")

	// ErrOperatorNotAllowed indicates an operator outside the condition
	// type's legal set.
	ErrOperatorNotAllowed = errors.New("operator not allowed for condition type")

	// ErrUnknownLogic indicates a predicate logic other than and/or.
	ErrUnknownLogic = errors.New("unknown predicate logic")

	// ErrConditionValueShape indicates a condition value whose runtime shape
	// does not fit the operator (e.g. between without a numeric interval).
	ErrConditionValueShape = errors.New("condition value shape does not match operator")

	// ErrFactTypeMismatch indicates an operator applied to a fact of the
	// wrong runtime kind (e.g. contains against a number).
	ErrFactTypeMismatch = errors.New("fact type does not match operator")

	// ErrUnknownTimeKeyword indicates a time eq value outside the
	// business_hours/off_hours vocabulary.
	ErrUnknownTimeKeyword = errors.New("unknown time keyword")

	// ErrTooManyConditions indicates a predicate exceeds MaxPredicateConditions.
	ErrTooManyConditions = errors.New("predicate has too many conditions")

	// ErrTooManySetValues indicates an in/not_in list exceeds MaxStringSetValues.
	ErrTooManySetValues = errors.New("string set has too many values")

	// ErrTooManyDestinations indicates a rule exceeds MaxRuleDestinations.
	ErrTooManyDestinations = errors.New("rule has too many destinations")

	// ErrTemplateTooLong indicates a destination template exceeds MaxTemplateLength.
	ErrTemplateTooLong = errors.New("destination template too long")

	// ErrDestinationIdentifiers indicates zero or multiple destination
	// identifiers set; exactly one of integration/email/webhook is required.
	ErrDestinationIdentifiers = errors.New("destination must set exactly one of integration_id, email, webhook_url")

	// ErrDestinationTypeMismatch indicates the declared destination type does
	// not match the populated identifier.
	ErrDestinationTypeMismatch = errors.New("destination type does not match populated identifier")

	// ErrRuleName indicates a rule without a name.
	ErrRuleName = errors.New("rule name is required")
)
