package cmd

import (
	"fmt"
	"strings"

	"github.com/loopdesk/escalate/internal/engine"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List supported condition types and their operators",
	Run:   runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) {
	for _, ct := range engine.ConditionTypes() {
		ops := make([]string, len(ct.Operators))
		for i, op := range ct.Operators {
			ops[i] = string(op)
		}
		fmt.Printf("%-12s %-10s %s\n", ct.Name, ct.ValueKind, strings.Join(ops, ", "))
		fmt.Printf("%-12s %s\n", "", ct.Description)
	}
}
