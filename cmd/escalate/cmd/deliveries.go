package cmd

import (
	"context"
	"fmt"

	"github.com/loopdesk/escalate/internal/store"
	"github.com/loopdesk/escalate/internal/types"
	"github.com/spf13/cobra"
)

var deliveriesTenant string

var deliveriesCmd = &cobra.Command{
	Use:   "deliveries",
	Short: "Show outbox delivery counts by status",
	RunE:  runDeliveries,
}

func init() {
	rootCmd.AddCommand(deliveriesCmd)
	deliveriesCmd.Flags().StringVar(&deliveriesTenant, "tenant", "", "tenant ID (required)")
	deliveriesCmd.MarkFlagRequired("tenant")
}

func runDeliveries(cmd *cobra.Command, args []string) error {
	_, database, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	outbox, err := store.New(database)
	if err != nil {
		return err
	}

	ctx := context.Background()
	tenant := types.TenantID(deliveriesTenant)
	for _, status := range []string{"pending", "sent", "failed"} {
		count, err := outbox.CountDeliveries(ctx, tenant, status)
		if err != nil {
			return err
		}
		fmt.Printf("%-8s %d\n", status, count)
	}
	return nil
}
