package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/loopdesk/escalate/internal/engine"
	"github.com/loopdesk/escalate/internal/resolve"
	"github.com/loopdesk/escalate/internal/store"
	"github.com/loopdesk/escalate/internal/types"
	"github.com/spf13/cobra"
)

var (
	evalTenant     string
	evalMessage    string
	evalConfidence float64
	evalUserEmail  string
	evalSiteID     string
	evalAt         string
	evalEnqueue    bool
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a tenant's rules against a conversation turn",
	Long: `Evaluate builds an evaluation context from the given facts, scores every
active rule for the tenant, and prints the per-condition trace. The same
evaluator backs production escalation and this preview; with --enqueue the
resolved deliveries are also handed to the outbox table.`,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVar(&evalTenant, "tenant", "", "tenant ID (required)")
	evalCmd.Flags().StringVar(&evalMessage, "message", "", "conversation message text")
	evalCmd.Flags().Float64Var(&evalConfidence, "confidence", 0, "answer confidence, 0 to 1")
	evalCmd.Flags().StringVar(&evalUserEmail, "user-email", "", "visitor email, if known")
	evalCmd.Flags().StringVar(&evalSiteID, "site", "", "site ID, if known")
	evalCmd.Flags().StringVar(&evalAt, "at", "", "turn timestamp, RFC 3339 (default: now)")
	evalCmd.Flags().BoolVar(&evalEnqueue, "enqueue", false, "enqueue resolved deliveries to the outbox")
	evalCmd.MarkFlagRequired("tenant")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	hours, err := cfg.BusinessHours.Window()
	if err != nil {
		return err
	}

	turn := types.Context{
		Message:    evalMessage,
		Confidence: evalConfidence,
		UserEmail:  evalUserEmail,
		SiteID:     evalSiteID,
	}
	if evalAt != "" {
		ts, err := time.Parse(time.RFC3339, evalAt)
		if err != nil {
			return fmt.Errorf("invalid --at timestamp: %w", err)
		}
		turn.Timestamp = ts
	}
	evalCtx := engine.BuildContext(turn, hours)

	rules, err := store.New(database)
	if err != nil {
		return err
	}

	ctx := context.Background()
	tenant := types.TenantID(evalTenant)
	active, err := rules.ListActiveRules(ctx, tenant, cfg.MaxRuleBatch)
	if err != nil {
		return err
	}

	matches := engine.EvaluateRules(active, evalCtx)
	fmt.Printf("Evaluated %d rules, %d matched (hour=%d off_hours=%v)\n\n",
		len(active), len(matches), evalCtx.Hour, evalCtx.OffHours)

	var deliveries []types.ResolvedDelivery
	for _, match := range matches {
		fmt.Printf("MATCH %s (%s)\n", match.Rule.Name, match.Rule.RuleID)
		printTrace(match.Result.Trace)

		resolved, skipped := resolve.Resolve(match.Rule, evalCtx)
		for _, skip := range skipped {
			fmt.Printf("  skipped %s destination: %v\n", skip.Destination.Type, skip.Reason)
		}
		for _, delivery := range resolved {
			fmt.Printf("  -> %s %s\n", delivery.Destination.Type, deliveryLabel(delivery.Destination))
		}
		deliveries = append(deliveries, resolved...)
	}

	if evalEnqueue && len(deliveries) > 0 {
		ids, err := rules.EnqueueDeliveries(ctx, tenant, deliveries)
		if err != nil {
			return fmt.Errorf("failed to enqueue deliveries: %w", err)
		}
		log.Printf("Enqueued %d deliveries", len(ids))
	}

	return nil
}

// printTrace renders one line per condition so a rule author can see exactly
// which leaf fired and why.
func printTrace(trace []engine.TraceEntry) {
	for _, entry := range trace {
		status := "miss"
		if entry.Result {
			status = "hit "
		}
		line := fmt.Sprintf("  [%s] %s %s %s", status,
			entry.Condition.Type, entry.Condition.Operator, entry.Condition.Value)
		if entry.Err != nil {
			line += fmt.Sprintf(" (error: %v)", entry.Err)
		} else if entry.Fact != nil {
			line += fmt.Sprintf(" (fact: %v)", entry.Fact)
		}
		fmt.Println(line)
	}
}

func deliveryLabel(d types.Destination) string {
	switch {
	case d.IntegrationID != "":
		return d.IntegrationID
	case d.Email != "":
		return d.Email
	default:
		return d.WebhookURL
	}
}
