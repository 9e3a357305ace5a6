// Package engine implements the escalation rule kernel: the condition type
// registry, the operator library, and the predicate evaluator.
//
// The engine is a pure, synchronous computation with no I/O and no shared
// mutable state. Evaluate and EvaluateRules are safe to call concurrently:
// the registry is read-only and every call operates on its own context and
// caller-supplied rule data.
package engine

import "github.com/loopdesk/escalate/internal/types"

/*
 * Predicate evaluation.
 *
 * Walks a flat condition list, resolving each condition's fact from the
 * context via the registry and scoring it with the operator library, then
 * combines the results under the predicate's and/or logic.
 *
 * Trace is always complete: one entry per condition in authored order, even
 * when the combined outcome is already decided. The test-rule preview needs
 * to show why every leaf did or did not fire, and production batches are
 * small enough (tens of conditions) that skipping the tail buys nothing.
 *
 * Failure containment: a malformed leaf (unknown type, illegal operator,
 * wrong value shape) records its error in the trace and scores false. One
 * corrupt condition never aborts the rule, and one corrupt rule never aborts
 * the tenant's batch.
 */

// TraceEntry records the outcome of one condition: the condition itself, the
// fact value it was compared against (nil when absent), the boolean result,
// and any configuration or type error that forced the result to false.
type TraceEntry struct {
	Condition types.Condition `json:"condition"`
	Fact      any             `json:"fact,omitempty"`
	Result    bool            `json:"result"`
	Err       error           `json:"-"`
}

// Error renders the trace entry's error marker for display; empty when the
// leaf evaluated cleanly.
func (e TraceEntry) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Result is the outcome of evaluating one predicate.
type Result struct {
	Matched bool
	Trace   []TraceEntry
}

// Evaluate scores a predicate against the facts of one conversation turn.
//
// A predicate with no conditions never matches: an authoring bug must not
// become a catch-all escalation. Unknown logic likewise never matches. An
// empty logic defaults to and, matching how the authoring surface
// serializes single-condition rules.
func Evaluate(p types.Predicate, c types.Context) Result {
	if len(p.Conditions) == 0 {
		return Result{Matched: false, Trace: []TraceEntry{}}
	}

	trace := make([]TraceEntry, 0, len(p.Conditions))
	for _, cond := range p.Conditions {
		trace = append(trace, evaluateCondition(cond, c))
	}

	switch p.Logic {
	case types.LogicAnd, "":
		for _, entry := range trace {
			if !entry.Result {
				return Result{Matched: false, Trace: trace}
			}
		}
		return Result{Matched: true, Trace: trace}

	case types.LogicOr:
		for _, entry := range trace {
			if entry.Result {
				return Result{Matched: true, Trace: trace}
			}
		}
		return Result{Matched: false, Trace: trace}

	default:
		return Result{Matched: false, Trace: trace}
	}
}

// evaluateCondition scores a single condition. Never panics on malformed
// stored rules; every failure mode lands in the trace entry.
func evaluateCondition(cond types.Condition, c types.Context) TraceEntry {
	entry := TraceEntry{Condition: cond}

	ct, ok := ConditionTypeFor(cond.Type)
	if !ok {
		entry.Err = types.ErrUnknownConditionType
		return entry
	}

	op := Operator(cond.Operator)
	if !ct.Allows(op) {
		entry.Err = types.ErrOperatorNotAllowed
		return entry
	}

	// Same shape check as ValidateCondition. Compare's own checks do not
	// cover eq/ne, whose coercion would let a stored {confidence eq "0.5"}
	// match through string comparison.
	if err := validateValueShape(ct, op, cond.Value); err != nil {
		entry.Err = err
		return entry
	}

	fact, found := ct.fact(c)
	if !found {
		// Absent facts never match, regardless of operator
		return entry
	}
	entry.Fact = fact

	matched, err := Compare(op, fact, cond.Value)
	if err != nil {
		entry.Err = err
		return entry
	}
	entry.Result = matched
	return entry
}

// RuleMatch pairs a matched rule with its evaluation result.
type RuleMatch struct {
	Rule   types.Rule
	Result Result
}

// EvaluateRules scores a tenant's rules against one context in the given
// order and returns every rule that matched. Multiple rules may fire for one
// turn; all of them are forwarded to the resolver, there is no
// first-match-wins. Disabled rules are skipped defensively even though the
// store already filters them.
func EvaluateRules(rules []types.Rule, c types.Context) []RuleMatch {
	matches := make([]RuleMatch, 0, len(rules))
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		result := Evaluate(rule.Predicate, c)
		if result.Matched {
			matches = append(matches, RuleMatch{Rule: rule, Result: result})
		}
	}
	return matches
}
