package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"table-reconciler/core/config"
	"table-reconciler/core/database"
	"table-reconciler/core/logger"
	"table-reconciler/core/storage"
	"table-reconciler/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check that storage and the reference database are ready",
	Long: `Checks that the storage bucket used for uploads and results exists and that the
configured reference database answers a ping. Prints the report as JSON and exits
non-zero when any check fails. Use --fix to create a missing bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		// The database check reports the connection failure instead of aborting.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			defer database.Close(db)
		}
		pinger := integrity.PingerFunc(func(timeout time.Duration) error {
			if db == nil {
				return fmt.Errorf("no connection to %s on %s", cfg.Database.Name, cfg.Database.Host)
			}
			return database.Ping(db, timeout)
		})

		svc := integrity.NewService(store, cfg.Storage.Bucket, cfg.Storage.Region, pinger, cfg.Database.Timeout(), logg)

		report := svc.Run(ctx)
		if report.Storage.Status == integrity.StatusMissing {
			if fixFlag {
				logg.Info("Creating missing bucket...", zap.String("bucket", cfg.Storage.Bucket))
				if err := svc.FixStorage(ctx); err != nil {
					return fmt.Errorf("failed to fix storage: %w", err)
				}
				report = svc.Run(ctx)
			} else {
				logg.Info("Run with --fix to create the missing bucket.")
			}
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(out))

		if !report.Healthy {
			return fmt.Errorf("integrity check failed")
		}
		logg.Info("All integrity checks passed")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the storage bucket when missing")
}
