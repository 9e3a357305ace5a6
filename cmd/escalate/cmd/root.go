package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configFile string
	dbURL      string
)

var rootCmd = &cobra.Command{
	Use:   "escalate",
	Short: "Escalation rule engine for support conversations",
	Long:  `Escalate evaluates tenant-authored rules against conversation turns and hands matched deliveries to the outbox.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "database connection URL (sqlite://path or postgres://...)")
}

func Execute() error {
	return rootCmd.Execute()
}
