// Package resolve turns matched escalation rules into concrete outbound
// deliveries: one rendered message per configured destination.
//
// Pure transform, no I/O, no retry state. The external outbox subsystem
// consumes the delivery list and owns transport, retries and status
// bookkeeping.
package resolve

import "github.com/loopdesk/escalate/internal/types"

// SkippedDestination reports a destination excluded from resolution, with
// the configuration error that disqualified it.
type SkippedDestination struct {
	Destination types.Destination
	Reason      error
}

// Resolve renders one delivery per valid destination on a matched rule.
// Delivery order matches the rule's destination order. Invalid destinations
// (zero or multiple identifiers set, identifier/type mismatch) are returned
// as skipped with a reason; the rule's remaining destinations still deliver.
//
// Resolving the same rule and context twice yields identical output: the
// rendered timestamp comes from the context, not the wall clock, and no
// identifiers are generated here.
func Resolve(rule types.Rule, c types.Context) ([]types.ResolvedDelivery, []SkippedDestination) {
	deliveries := make([]types.ResolvedDelivery, 0, len(rule.Destinations))
	var skipped []SkippedDestination

	for _, dest := range rule.Destinations {
		if err := dest.Validate(); err != nil {
			skipped = append(skipped, SkippedDestination{Destination: dest, Reason: err})
			continue
		}
		deliveries = append(deliveries, types.ResolvedDelivery{
			RuleID:          rule.RuleID,
			RuleName:        rule.Name,
			Destination:     dest,
			RenderedMessage: Render(dest.Template, c),
			Context:         c,
		})
	}
	return deliveries, skipped
}
