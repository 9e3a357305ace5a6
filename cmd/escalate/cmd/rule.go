package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/loopdesk/escalate/internal/engine"
	"github.com/loopdesk/escalate/internal/store"
	"github.com/loopdesk/escalate/internal/types"
	"github.com/spf13/cobra"
)

var ruleTenant string

var addRuleCmd = &cobra.Command{
	Use:   "add-rule <rule.json>",
	Short: "Validate and insert an escalation rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddRule,
}

var disableRuleCmd = &cobra.Command{
	Use:   "disable-rule <rule-id>",
	Short: "Disable a rule without deleting it",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisableRule,
}

var deleteRuleCmd = &cobra.Command{
	Use:   "delete-rule <rule-id>",
	Short: "Delete a rule and its destinations",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteRule,
}

func init() {
	rootCmd.AddCommand(addRuleCmd)
	rootCmd.AddCommand(disableRuleCmd)
	rootCmd.AddCommand(deleteRuleCmd)
	for _, c := range []*cobra.Command{addRuleCmd, disableRuleCmd, deleteRuleCmd} {
		c.Flags().StringVar(&ruleTenant, "tenant", "", "tenant ID (required)")
		c.MarkFlagRequired("tenant")
	}
}

func runAddRule(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read rule file: %w", err)
	}

	var rule types.Rule
	if err := json.Unmarshal(data, &rule); err != nil {
		return fmt.Errorf("failed to parse rule: %w", err)
	}
	rule.TenantID = types.TenantID(ruleTenant)
	rule.Enabled = true

	if err := engine.ValidateRule(rule); err != nil {
		return fmt.Errorf("invalid rule: %w", err)
	}

	_, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	rules, err := store.New(database)
	if err != nil {
		return err
	}

	if err := rules.InsertRule(context.Background(), &rule); err != nil {
		return err
	}
	log.Printf("Rule %s created (%s)", rule.RuleID, rule.Name)
	return nil
}

func runDisableRule(cmd *cobra.Command, args []string) error {
	id, err := types.ParseRuleID(args[0])
	if err != nil {
		return fmt.Errorf("invalid rule ID: %w", err)
	}

	_, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	rules, err := store.New(database)
	if err != nil {
		return err
	}

	if err := rules.SetRuleEnabled(context.Background(), types.TenantID(ruleTenant), id, false); err != nil {
		return err
	}
	log.Printf("Rule %s disabled", id)
	return nil
}

func runDeleteRule(cmd *cobra.Command, args []string) error {
	id, err := types.ParseRuleID(args[0])
	if err != nil {
		return fmt.Errorf("invalid rule ID: %w", err)
	}

	_, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	rules, err := store.New(database)
	if err != nil {
		return err
	}

	if err := rules.DeleteRule(context.Background(), types.TenantID(ruleTenant), id); err != nil {
		return err
	}
	log.Printf("Rule %s deleted", id)
	return nil
}
