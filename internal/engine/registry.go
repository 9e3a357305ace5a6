package engine

import "github.com/loopdesk/escalate/internal/types"

/*
 * Condition type registry.
 *
 * Static catalog of the condition types a rule may reference: identifier,
 * display metadata, semantic value kind, legal operators, and the fact
 * accessor that reads the corresponding field off the evaluation context.
 *
 * The evaluator is generic over this catalog: adding a condition type is a
 * registry entry, not an evaluator change. Entries are built once at package
 * init and never mutated, so concurrent lookups need no locking.
 *
 * Fact accessors return (value, found). Optional context fields (site, user)
 * report found=false when empty; every operator treats an absent fact as
 * non-matching, so a rule on user email simply never fires for anonymous
 * visitors instead of erroring.
 */

// ValueKind describes the semantic type of a condition type's value,
// exposed so authoring surfaces can derive input widgets without embedding
// business rules in presentation code.
type ValueKind int

const (
	// KindNumber is a single numeric value.
	KindNumber ValueKind = iota
	// KindString is free text.
	KindString
	// KindStringSet is an ordered set of strings.
	KindStringSet
	// KindEnum is a controlled vocabulary (site IDs, time keywords).
	KindEnum
)

// String returns the kind identifier used in CLI and API output.
func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindStringSet:
		return "string_set"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConditionType describes one supported condition type.
type ConditionType struct {
	Name        string
	Label       string
	Description string
	ValueKind   ValueKind
	Operators   []Operator

	fact func(c types.Context) (any, bool)
}

// Allows reports whether op is in the condition type's legal operator set.
func (ct ConditionType) Allows(op Operator) bool {
	for _, allowed := range ct.Operators {
		if allowed == op {
			return true
		}
	}
	return false
}

// timeOfDay is the resolved fact for time conditions. It carries both the
// hour (for between intervals) and the off-hours flag (for eq against the
// business_hours/off_hours vocabulary) so one fact accessor serves both
// operators.
type timeOfDay struct {
	hour     int
	offHours bool
}

// builtinTypes holds the registry in display order. Order is stable for UI
// enumeration; lookups go through builtinIndex.
var builtinTypes = []ConditionType{
	{
		Name:        "confidence",
		Label:       "Answer confidence",
		Description: "Model confidence score for the generated answer, 0 to 1",
		ValueKind:   KindNumber,
		Operators:   []Operator{OpLt, OpLte, OpGt, OpGte, OpEq, OpNe, OpBetween},
		fact: func(c types.Context) (any, bool) {
			return c.Confidence, true
		},
	},
	{
		Name:        "message",
		Label:       "Message content",
		Description: "Substring match against the visitor's message text",
		ValueKind:   KindString,
		Operators:   []Operator{OpContains, OpNotContains, OpEq, OpNe},
		fact: func(c types.Context) (any, bool) {
			return c.Message, true
		},
	},
	{
		Name:        "site",
		Label:       "Site",
		Description: "Site the conversation belongs to, matched by ID",
		ValueKind:   KindEnum,
		Operators:   []Operator{OpEq, OpIn},
		fact: func(c types.Context) (any, bool) {
			return c.SiteID, c.SiteID != ""
		},
	},
	{
		Name:        "time",
		Label:       "Time of day",
		Description: "Business-hours keyword or an hour-of-day interval",
		ValueKind:   KindEnum,
		Operators:   []Operator{OpEq, OpBetween},
		fact: func(c types.Context) (any, bool) {
			return timeOfDay{hour: c.Hour, offHours: c.OffHours}, true
		},
	},
	{
		Name:        "user",
		Label:       "User email",
		Description: "Email address of the signed-in visitor, if known",
		ValueKind:   KindString,
		Operators:   []Operator{OpEq, OpNe, OpContains},
		fact: func(c types.Context) (any, bool) {
			return c.UserEmail, c.UserEmail != ""
		},
	},
}

var builtinIndex = func() map[string]ConditionType {
	idx := make(map[string]ConditionType, len(builtinTypes))
	for _, ct := range builtinTypes {
		idx[ct.Name] = ct
	}
	return idx
}()

// ConditionTypeFor looks up a condition type by its identifier.
func ConditionTypeFor(name string) (ConditionType, bool) {
	ct, ok := builtinIndex[name]
	return ct, ok
}

// ConditionTypes returns the registry in display order. The slice is a copy;
// callers may not mutate registry entries.
func ConditionTypes() []ConditionType {
	out := make([]ConditionType, len(builtinTypes))
	copy(out, builtinTypes)
	return out
}
