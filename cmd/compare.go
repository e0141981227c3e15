package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"table-reconciler/core/config"
	"table-reconciler/core/database"
	"table-reconciler/core/dataset"
	"table-reconciler/core/export"
	"table-reconciler/core/ingest"
	"table-reconciler/core/logger"
	"table-reconciler/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// Flags for the compare command
	compareReference  string
	compareQuery      string
	compareComparand  string
	compareKeys       []string
	compareMappings   []string
	compareOutput     string
	comparePairLimit  int
	compareSampleRows int
)

// compareCmd runs one reconciliation from the command line.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a reference table against a file",
	Long: `Compare a reference dataset against a comparand file and report the differences.

The reference side is either a CSV/XLSX file (--reference) or a read-only SQL
query against the configured database (--query). Without --key rows are
matched by content.

Examples:
  # Two files joined on RecordID
  compare --reference export.csv --file upload.xlsx --key RecordID

  # SQL against a file, keyless, with an Excel report
  compare --query "SELECT * FROM users" --file users.xlsx --out report.xlsx

  # Map differently named columns (reference=comparand)
  compare --reference a.csv --file b.csv --map id=RecordID --map name=UserName --key id`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareReference, "reference", "", "Reference CSV or XLSX file")
	compareCmd.Flags().StringVar(&compareQuery, "query", "", "Read-only SQL query producing the reference side")
	compareCmd.Flags().StringVar(&compareComparand, "file", "", "Comparand CSV or XLSX file")
	compareCmd.Flags().StringSliceVar(&compareKeys, "key", nil, "Key column (repeatable); omit for content matching")
	compareCmd.Flags().StringArrayVar(&compareMappings, "map", nil, "Column mapping reference=comparand (repeatable)")
	compareCmd.Flags().StringVar(&compareOutput, "out", "", "Write an .xlsx report to this path")
	compareCmd.Flags().IntVar(&comparePairLimit, "pair-ceiling", 0, "Leftover size above which similarity pairing is skipped (default from config)")
	compareCmd.Flags().IntVar(&compareSampleRows, "sample", 5, "Number of report rows to log")

	compareCmd.MarkFlagsMutuallyExclusive("reference", "query")
	compareCmd.MarkFlagsOneRequired("reference", "query")
	_ = compareCmd.MarkFlagRequired("file")

	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	mappings, err := parseMappings(compareMappings)
	if err != nil {
		return err
	}

	var ref, cmp *dataset.Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if compareQuery != "" {
			ref, err = queryReference(gctx, cfg)
		} else {
			ref, err = readFile(compareReference)
		}
		return err
	})
	g.Go(func() error {
		var err error
		cmp, err = readFile(compareComparand)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	ref, cmp = dataset.ApplyMapping(ref, cmp, mappings)

	ceiling := cfg.Reconcile.PairCeiling
	if comparePairLimit > 0 {
		ceiling = comparePairLimit
	}
	refLabel := ref.Label
	if compareQuery != "" {
		refLabel = cfg.Reconcile.ReferenceLabel
	}

	res, err := reconcile.Reconcile(ref, cmp, reconcile.Options{
		Keys:           compareKeys,
		ReferenceLabel: refLabel,
		ComparandLabel: cmp.Label,
		PairCeiling:    ceiling,
		Logger:         l,
	})
	if err != nil {
		return fmt.Errorf("failed to reconcile: %w", err)
	}

	printCompareReport(l, res, compareSampleRows)

	if compareOutput != "" {
		if err := writeReport(compareOutput, res); err != nil {
			return err
		}
		l.Info("Report written", zap.String("path", compareOutput))
	}
	return nil
}

func queryReference(ctx context.Context, cfg *config.Config) (*dataset.Dataset, error) {
	if err := database.CheckReadOnly(compareQuery); err != nil {
		return nil, err
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	defer database.Close(db)
	return database.QueryDataset(ctx, db, compareQuery, cfg.Reconcile.ReferenceLabel)
}

func readFile(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := ingest.Read(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ds, nil
}

// parseMappings turns reference=comparand pairs into column mappings.
func parseMappings(pairs []string) ([]dataset.ColumnMapping, error) {
	mappings := make([]dataset.ColumnMapping, 0, len(pairs))
	for _, p := range pairs {
		ref, cmp, ok := strings.Cut(p, "=")
		ref, cmp = strings.TrimSpace(ref), strings.TrimSpace(cmp)
		if !ok || ref == "" || cmp == "" {
			return nil, fmt.Errorf("invalid column mapping %q: want reference=comparand", p)
		}
		mappings = append(mappings, dataset.ColumnMapping{Reference: ref, Comparand: cmp})
	}
	return mappings, nil
}

func writeReport(path string, res *reconcile.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return export.WriteXLSX(f, res)
}

// printCompareReport logs the summary and up to sample report rows.
func printCompareReport(l *zap.Logger, res *reconcile.Result, sample int) {
	s := res.Summary

	l.Info("Reconciliation report",
		zap.String("mode", string(s.Mode)),
		zap.Strings("key_cols", s.KeyColumns),
		zap.Int("reference_rows", s.TotalReferenceRows),
		zap.Int("comparand_rows", s.TotalComparandRows),
		zap.Int("matched", s.MatchedRows),
		zap.Int("mismatches", s.Mismatches),
		zap.Int("only_in_reference", s.OnlyInReference),
		zap.Int("only_in_comparand", s.OnlyInComparand),
		zap.Bool("pairing_skipped", s.PairingSkipped),
		zap.Float64("elapsed_seconds", s.ElapsedSeconds),
	)

	if s.TotalDiscrepancies == 0 {
		l.Info(export.AllMatchedMessage)
		return
	}

	shown := min(sample, len(res.Rows))
	for _, row := range res.Rows[:shown] {
		l.Info("Sample row",
			zap.String("status", row.StatusText),
			zap.String("source", row.Source),
			zap.Any("values", res.Record(row)),
			zap.Strings("mismatched", row.Mismatched),
		)
	}
	if len(res.Rows) > shown {
		l.Info("Additional rows not shown", zap.Int("count", len(res.Rows)-shown))
	}
}
