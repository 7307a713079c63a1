package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"omnibench/internal/duckdb"
	"omnibench/internal/report"
)

// runIngest loads one run, or every run with --all, into the warehouse.
func runIngest(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		var selection runSelection
		selection.register(fs)
		all := fs.Bool("all", false, "Ingest every stored run")
		dbPath := fs.String("db", "", "Warehouse path (default: config warehouse)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, fs, stderr) {
			return ExitUsage
		}

		ctx := context.Background()
		var (
			proj    project
			runDirs []string
			err     error
		)
		if *all {
			proj, err = loadProject(selection.configPath)
			if err == nil {
				runDirs, err = report.ListRuns(proj.outputDir(""))
				if os.IsNotExist(err) {
					err = nil
				}
			}
		} else {
			var runDir string
			proj, runDir, err = selection.resolve("")
			runDirs = []string{runDir}
		}
		if err != nil {
			fmt.Fprintf(stderr, "Ingest failed: %v\n", err)
			return ExitError
		}
		if len(runDirs) == 0 {
			fmt.Fprintln(stdout, "No runs to ingest")
			return ExitOK
		}

		warehouse := proj.warehousePath(*dbPath)
		db, err := duckdb.Open(ctx, warehouse)
		if err != nil {
			fmt.Fprintf(stderr, "Ingest failed: %v\n", err)
			return ExitError
		}
		defer db.Close()

		var last report.Run
		for _, runDir := range runDirs {
			run, err := report.LoadRun(runDir)
			if err != nil {
				fmt.Fprintf(stderr, "Ingest failed: %v\n", err)
				return ExitError
			}
			result, err := duckdb.IngestRun(ctx, db, run)
			if err != nil {
				fmt.Fprintf(stderr, "Ingest failed: %s: %v\n", run.Title(), err)
				return ExitError
			}
			last = run
			if result.Skipped {
				fmt.Fprintf(stdout, "Unchanged %s\n", run.Title())
				continue
			}
			fmt.Fprintf(stdout, "Ingested %s (%d samples)\n", run.Title(), result.Samples)
		}

		if !*all {
			if err := printTaskAccuracy(ctx, stdout, db, last); err != nil {
				fmt.Fprintf(stderr, "Ingest failed: %v\n", err)
				return ExitError
			}
		}
		fmt.Fprintf(stdout, "Warehouse: %s\n", warehouse)
		return ExitOK
	}
}

// printTaskAccuracy prints the per-task rollup of an OCR run.
func printTaskAccuracy(ctx context.Context, w io.Writer, db *sql.DB, run report.Run) error {
	if run.Results.OCR == nil {
		return nil
	}
	rows, err := duckdb.TaskAccuracyForRun(ctx, db, run.Manifest.RunID)
	if err != nil {
		return err
	}
	table := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "TASK\tSAMPLES\tSUCCESS\tCORRECT\tAVG ANLS")
	for _, row := range rows {
		anls := "N/A"
		if row.AvgANLS.Valid {
			anls = fmt.Sprintf("%.3f", row.AvgANLS.Float64)
		}
		fmt.Fprintf(table, "%s\t%d\t%d\t%d\t%s\n", row.TaskType, row.Samples, row.APISuccess, row.TextCorrect, anls)
	}
	return table.Flush()
}
