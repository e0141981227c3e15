package cmd

import (
	"fmt"
	"os"

	"table-reconciler/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "table-reconciler",
	Short: "Tabular data reconciliation service",
	Long: `Table Reconciler compares a SQL query result against an uploaded CSV or
Excel file and reports mismatched, missing and extra rows.
Rows are matched on key columns or, without keys, by content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with ISO8601 timestamps reads best in a terminal.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
