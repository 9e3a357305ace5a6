// Package store persists escalation rules and hands resolved deliveries to
// the outbox table. It is the only component with I/O; the engine and
// resolver stay pure and receive rules as plain data.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/loopdesk/escalate/internal/core/db"
	"github.com/loopdesk/escalate/internal/types"
)

// Store wraps the database connection and the named query set.
type Store struct {
	db *sqlx.DB
	q  *db.Queries
}

// New creates a store over an open database connection.
func New(database *sqlx.DB) (*Store, error) {
	if database == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}
	queries, err := db.LoadQueries(database)
	if err != nil {
		return nil, err
	}
	return &Store{db: database, q: queries}, nil
}

// ruleRow mirrors the rules table.
type ruleRow struct {
	RuleID    string    `db:"rule_id"`
	TenantID  string    `db:"tenant_id"`
	Name      string    `db:"name"`
	Enabled   bool      `db:"enabled"`
	Priority  int       `db:"priority"`
	Predicate []byte    `db:"predicate"`
	CreatedAt time.Time `db:"created_at"`
}

// destinationRow mirrors the rule_destinations table.
type destinationRow struct {
	RuleID        string `db:"rule_id"`
	Position      int    `db:"position"`
	DestType      string `db:"dest_type"`
	IntegrationID string `db:"integration_id"`
	Email         string `db:"email"`
	WebhookURL    string `db:"webhook_url"`
	Template      string `db:"template"`
	Config        []byte `db:"config"`
}

// ListActiveRules loads a tenant's enabled rules in evaluation order:
// priority, then creation time, then rule ID as the final tiebreak, so the
// same rule set always evaluates in the same order.
//
// A stored predicate that no longer parses is replaced with an empty one:
// an empty predicate never matches, so a corrupt rule degrades to inert
// instead of failing the tenant's whole batch.
func (s *Store) ListActiveRules(ctx context.Context, tenant types.TenantID, limit int) ([]types.Rule, error) {
	var rows []ruleRow
	if err := s.q.Select(ctx, "list-active-rules", &rows, string(tenant), true, limit); err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}

	rules := make([]types.Rule, 0, len(rows))
	for _, row := range rows {
		rule := types.Rule{
			RuleID:    types.RuleID(row.RuleID),
			TenantID:  types.TenantID(row.TenantID),
			Name:      row.Name,
			Enabled:   row.Enabled,
			Priority:  row.Priority,
			CreatedAt: row.CreatedAt,
		}

		var predicate types.Predicate
		if err := json.Unmarshal(row.Predicate, &predicate); err == nil {
			rule.Predicate = predicate
		}

		destinations, err := s.listDestinations(ctx, row.RuleID)
		if err != nil {
			return nil, err
		}
		rule.Destinations = destinations

		rules = append(rules, rule)
	}

	return rules, nil
}

// listDestinations loads a rule's destinations in configured order.
func (s *Store) listDestinations(ctx context.Context, ruleID string) ([]types.Destination, error) {
	var rows []destinationRow
	if err := s.q.Select(ctx, "list-destinations", &rows, ruleID); err != nil {
		return nil, fmt.Errorf("failed to list destinations for rule %s: %w", ruleID, err)
	}

	destinations := make([]types.Destination, 0, len(rows))
	for _, row := range rows {
		dest := types.Destination{
			Type:          types.DestinationType(row.DestType),
			IntegrationID: row.IntegrationID,
			Email:         row.Email,
			WebhookURL:    row.WebhookURL,
			Template:      row.Template,
		}
		if len(row.Config) > 0 {
			// Opaque config bag; ignored when unparseable rather than
			// blocking the destination
			_ = json.Unmarshal(row.Config, &dest.Config)
		}
		destinations = append(destinations, dest)
	}
	return destinations, nil
}

// InsertRule persists a rule and its destinations in one transaction.
// Assigns a UUIDv7 rule ID and creation time when absent. The rule is
// expected to have passed engine.ValidateRule; the database enforces only
// referential shape, not predicate semantics.
func (s *Store) InsertRule(ctx context.Context, rule *types.Rule) error {
	if rule.RuleID == "" {
		rule.RuleID = types.NewRuleID()
	}
	if rule.CreatedAt.IsZero() {
		rule.CreatedAt = time.Now().UTC()
	}

	predicate, err := json.Marshal(rule.Predicate)
	if err != nil {
		return fmt.Errorf("failed to encode predicate: %w", err)
	}

	insertRule, err := s.q.Raw("insert-rule")
	if err != nil {
		return err
	}
	insertDest, err := s.q.Raw("insert-destination")
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, insertRule,
		string(rule.RuleID), string(rule.TenantID), rule.Name,
		rule.Enabled, rule.Priority, string(predicate), rule.CreatedAt,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert rule: %w", err)
	}

	for i, dest := range rule.Destinations {
		config := []byte("{}")
		if dest.Config != nil {
			config, err = json.Marshal(dest.Config)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to encode destination config: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx, insertDest,
			string(rule.RuleID), i, string(dest.Type),
			dest.IntegrationID, dest.Email, dest.WebhookURL,
			dest.Template, string(config),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert destination %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// SetRuleEnabled flips a rule's enabled state.
func (s *Store) SetRuleEnabled(ctx context.Context, tenant types.TenantID, id types.RuleID, enabled bool) error {
	result, err := s.q.Exec(ctx, "set-rule-enabled", enabled, string(tenant), string(id))
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("rule %s not found for tenant %s", id, tenant)
	}
	return nil
}

// DeleteRule removes a rule and its destinations in one transaction.
// The destination delete is tenant-scoped through the rules table, so a
// wrong-tenant call touches nothing. Destinations go first; SQLite only
// honors ON DELETE CASCADE with a per-connection pragma we do not rely on.
func (s *Store) DeleteRule(ctx context.Context, tenant types.TenantID, id types.RuleID) error {
	deleteDests, err := s.q.Raw("delete-rule-destinations")
	if err != nil {
		return err
	}
	deleteRule, err := s.q.Raw("delete-rule")
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, deleteDests, string(tenant), string(id)); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete destinations: %w", err)
	}
	result, err := tx.ExecContext(ctx, deleteRule, string(tenant), string(id))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		tx.Rollback()
		return fmt.Errorf("rule %s not found for tenant %s", id, tenant)
	}
	return tx.Commit()
}

// EnqueueDeliveries hands resolved deliveries to the outbox table, one
// pending row per delivery, all in one transaction. Returns the assigned
// delivery IDs in input order. Status transitions and retries belong to the
// external delivery worker.
func (s *Store) EnqueueDeliveries(ctx context.Context, tenant types.TenantID, deliveries []types.ResolvedDelivery) ([]types.DeliveryID, error) {
	if len(deliveries) == 0 {
		return nil, nil
	}

	insert, err := s.q.Raw("insert-delivery")
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	now := time.Now().UTC()
	ids := make([]types.DeliveryID, 0, len(deliveries))
	for _, delivery := range deliveries {
		snapshot, err := json.Marshal(delivery.Context)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to encode context snapshot: %w", err)
		}

		id := types.NewDeliveryID()
		if _, err := tx.ExecContext(ctx, insert,
			string(id), string(tenant), string(delivery.RuleID), delivery.RuleName,
			string(delivery.Destination.Type), deliveryTarget(delivery.Destination),
			delivery.RenderedMessage, string(snapshot), now,
		); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to enqueue delivery: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

// CountDeliveries returns how many of a tenant's outbox rows are in the
// given status ("pending", "sent", "failed").
func (s *Store) CountDeliveries(ctx context.Context, tenant types.TenantID, status string) (int, error) {
	var count int
	if err := s.q.Get(ctx, "count-deliveries-by-status", &count, string(tenant), status); err != nil {
		return 0, fmt.Errorf("failed to count deliveries: %w", err)
	}
	return count, nil
}

// deliveryTarget extracts the populated identifier for the outbox row.
// Destinations are validated before resolution, so exactly one is set.
func deliveryTarget(d types.Destination) string {
	switch {
	case d.IntegrationID != "":
		return d.IntegrationID
	case d.Email != "":
		return d.Email
	default:
		return d.WebhookURL
	}
}
