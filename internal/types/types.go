// Package types provides domain models shared across escalation engine components.
//
// Zero-dependency design: types.go, value.go and errors.go use only
// encoding/json so the evaluator can be embedded without pulling in storage
// or CLI dependencies. ID utilities in ids.go import uuid but are isolated
// for selective inclusion.
package types

import "time"

// RuleID represents a UUIDv7 rule identifier.
// String alias enables type safety while maintaining JSON string serialization.
type RuleID string

// DeliveryID represents a UUIDv7 outbox delivery identifier.
// UUIDv7 time-ordering ensures sequential IDs cluster in B-tree indexes.
type DeliveryID string

// TenantID identifies the owning tenant. Issued by the external account
// system; treated as an opaque string here.
type TenantID string

// Logic combines the conditions of a predicate.
type Logic string

const (
	// LogicAnd matches when every condition matches.
	LogicAnd Logic = "and"
	// LogicOr matches when any condition matches.
	LogicOr Logic = "or"
)

// Condition is one predicate leaf: a condition type, an operator and a
// comparison value. Type and Operator are string identifiers validated
// against the condition type registry; stored rules may carry identifiers
// the registry no longer knows, so the evaluator re-checks them defensively.
type Condition struct {
	Type     string `json:"type"`
	Operator string `json:"operator"`
	Value    Value  `json:"value"`
}

// Predicate is a flat list of conditions combined by one logic operator.
// The authoring surface supports a single grouping level, not arbitrary
// boolean trees; condition order is preserved for trace display only.
type Predicate struct {
	Logic      Logic       `json:"logic"`
	Conditions []Condition `json:"conditions"`
}

// DestinationType discriminates the destination variants.
type DestinationType string

const (
	// DestinationIntegration routes through a configured integration
	// (Slack, Teams, ...) owned by the external integrations subsystem.
	DestinationIntegration DestinationType = "integration"
	// DestinationEmail sends directly to an email address.
	DestinationEmail DestinationType = "email"
	// DestinationWebhook posts to a webhook URL.
	DestinationWebhook DestinationType = "webhook"
)

// Destination is one escalation target on a rule. Exactly one of
// IntegrationID, Email or WebhookURL must be set, matching Type.
// Destinations have no lifecycle outside their owning rule.
type Destination struct {
	Type          DestinationType   `json:"type"`
	IntegrationID string            `json:"integration_id,omitempty"`
	Email         string            `json:"email,omitempty"`
	WebhookURL    string            `json:"webhook_url,omitempty"`
	Template      string            `json:"template,omitempty"`
	Config        map[string]string `json:"config,omitempty"`
}

// Validate checks that exactly one destination identifier is populated and
// that it matches the declared Type. A failing destination is skipped at
// resolve time with a reported reason; it never aborts the rule's other
// deliveries.
func (d Destination) Validate() error {
	populated := 0
	var inferred DestinationType
	if d.IntegrationID != "" {
		populated++
		inferred = DestinationIntegration
	}
	if d.Email != "" {
		populated++
		inferred = DestinationEmail
	}
	if d.WebhookURL != "" {
		populated++
		inferred = DestinationWebhook
	}
	if populated != 1 {
		return ErrDestinationIdentifiers
	}
	if d.Type != "" && d.Type != inferred {
		return ErrDestinationTypeMismatch
	}
	return nil
}

// Rule is a complete escalation rule: a predicate plus the destinations to
// notify when it matches. Loaded as plain data from the rule store; the
// evaluator never mutates it.
type Rule struct {
	RuleID       RuleID        `json:"rule_id"`
	TenantID     TenantID      `json:"tenant_id"`
	Name         string        `json:"name"`
	Enabled      bool          `json:"enabled"`
	Priority     int           `json:"priority"`
	Predicate    Predicate     `json:"predicate"`
	Destinations []Destination `json:"destinations,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Context carries the facts of one conversation turn. Created fresh per
// evaluation call and owned by the caller; never persisted by the engine.
// Hour and OffHours are derived at the context boundary from Timestamp and
// the configured business-hours window (see engine.BuildContext); the
// evaluator only ever sees the already-resolved facts.
type Context struct {
	Message    string    `json:"message"`
	Confidence float64   `json:"confidence"`
	UserEmail  string    `json:"user_email,omitempty"`
	SiteID     string    `json:"site_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Hour       int       `json:"hour"`
	OffHours   bool      `json:"off_hours"`
}

// ResolvedDelivery is a rendered, destination-bound message ready for the
// external outbox. Pure data: identifiers are assigned when the outbox
// accepts it, so resolving the same rule and context twice yields identical
// deliveries.
type ResolvedDelivery struct {
	RuleID          RuleID      `json:"rule_id"`
	RuleName        string      `json:"rule_name"`
	Destination     Destination `json:"destination"`
	RenderedMessage string      `json:"rendered_message"`
	Context         Context     `json:"context"`
}

// Resource limits enforced at rule validation time. Rules are tenant-authored
// data; bounding them keeps evaluation cost predictable per conversation turn.
const (
	// MaxPredicateConditions bounds conditions per predicate. Observed rules
	// use a handful; 64 leaves generous headroom without unbounded iteration.
	MaxPredicateConditions = 64

	// MaxStringSetValues limits in/not_in membership lists.
	MaxStringSetValues = 64

	// MaxRuleDestinations bounds destinations per rule; each one becomes an
	// outbox row per matched turn.
	MaxRuleDestinations = 16

	// MaxTemplateLength caps message templates. 8KB covers any reasonable
	// notification body; larger content belongs in the linked conversation.
	MaxTemplateLength = 8 * 1024
)
