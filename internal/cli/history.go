package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"text/tabwriter"

	"omnibench/internal/dataset"
	"omnibench/internal/duckdb"
)

// runHistory lists the runs stored in the warehouse with their headline score.
func runHistory(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .omnibench/config.yml)")
		benchmark := fs.String("benchmark", "", "Only list runs of this benchmark")
		dbPath := fs.String("db", "", "Warehouse path (default: config warehouse)")
		limit := fs.Int("limit", 20, "Maximum runs to list (0 for all)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, fs, stderr) {
			return ExitUsage
		}

		proj, err := loadProject(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		warehouse := proj.warehousePath(*dbPath)
		if !fileExists(warehouse) {
			fmt.Fprintf(stderr, "No warehouse at %s; run `omnibench ingest` first\n", warehouse)
			return ExitError
		}

		ctx := context.Background()
		db, err := duckdb.Open(ctx, warehouse)
		if err != nil {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
			return ExitError
		}
		defer db.Close()

		runs, err := duckdb.ListRuns(ctx, db, *benchmark)
		if err != nil {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
			return ExitError
		}
		if len(runs) == 0 {
			fmt.Fprintln(stdout, "No stored runs")
			return ExitOK
		}
		if *limit > 0 && len(runs) > *limit {
			runs = runs[:*limit]
		}

		table := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(table, "RUN\tBENCHMARK\tMODEL\tSAMPLES\tFAILED\tSCORE")
		for _, run := range runs {
			score, err := headlineScore(ctx, db, run)
			if err != nil {
				fmt.Fprintf(stderr, "History failed: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(table, "%s\t%s\t%s\t%d\t%d\t%s\n", run.RunID, run.Benchmark, run.Model, run.Samples, run.Failed, score)
		}
		if err := table.Flush(); err != nil {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// headlineScore is text accuracy for OCR runs and mean CER for STT runs.
func headlineScore(ctx context.Context, db *sql.DB, run duckdb.RunOverview) (string, error) {
	metric, format := "text_accuracy", "acc %.1f%%"
	if run.Kind == string(dataset.KindSTT) {
		metric, format = "cer_mean", "CER %.4f"
	}
	value, ok, err := duckdb.Statistic(ctx, db, run.RunID, metric)
	if err != nil {
		return "", err
	}
	if !ok {
		return "N/A", nil
	}
	return fmt.Sprintf(format, value), nil
}
