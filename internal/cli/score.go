package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"omnibench/internal/dataset"
	"omnibench/internal/report"
	"omnibench/internal/runner"
)

// runScore evaluates OCR records that already carry a "predict" field.
func runScore(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		input := fs.String("input", "", "Dataset with predictions (.jsonl, .json, .yaml)")
		benchmark := fs.String("benchmark", "", "Dataset name for records without dataset_name (default: input file name)")
		output := fs.String("output", "", "Results file path (default: <input>.results.json)")
		limit := fs.Int("limit", 0, "Number of records to score (0 means all)")
		taskFilter := fs.String("task-filter", "", "Only score records whose type contains this text")
		noColor := fs.Bool("no-color", false, "Disable styled output")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, fs, stderr) {
			return ExitUsage
		}
		if strings.TrimSpace(*input) == "" {
			fmt.Fprintln(stderr, "Missing --input")
			return ExitUsage
		}

		inputPath := absPath(*input)
		name := strings.TrimSpace(*benchmark)
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		}
		resultsPath := *output
		if resultsPath == "" {
			resultsPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".results.json"
		}

		reader, err := dataset.Open(inputPath)
		if err != nil {
			fmt.Fprintf(stderr, "Score failed: %v\n", err)
			return ExitError
		}
		defer reader.Close()
		collection, err := dataset.Collect(context.Background(), reader, dataset.CollectOptions{Limit: *limit, TaskFilter: *taskFilter})
		if err != nil {
			fmt.Fprintf(stderr, "Score failed: load dataset: %v\n", err)
			return ExitError
		}

		scored := runner.ScoreOCR(name, collection.Records)
		if err := os.MkdirAll(filepath.Dir(resultsPath), 0o755); err != nil {
			fmt.Fprintf(stderr, "Score failed: create results dir: %v\n", err)
			return ExitError
		}
		if err := runner.WriteJSON(resultsPath, scored); err != nil {
			fmt.Fprintf(stderr, "Score failed: %v\n", err)
			return ExitError
		}
		results := report.Results{Kind: dataset.KindOCR, OCR: &scored}
		if err := report.WriteSummary(stdout, results, report.SummaryOptions{Title: name, NoColor: *noColor || colorDisabled(stdout)}); err != nil {
			fmt.Fprintf(stderr, "Score failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "\nResults: %s\n", resultsPath)
		return ExitOK
	}
}
