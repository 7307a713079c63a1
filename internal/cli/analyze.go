package cli

import (
	"fmt"
	"io"

	"omnibench/internal/report"
)

// runAnalyze prints the statistics of a results file or a stored run.
func runAnalyze(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		var selection runSelection
		selection.register(fs)
		noColor := fs.Bool("no-color", false, "Disable styled output")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() > 1 {
			fmt.Fprintln(stderr, "Too many arguments")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		var (
			results report.Results
			title   string
			err     error
		)
		if path := fs.Arg(0); path != "" {
			title = path
			results, err = report.LoadResults(path)
		} else {
			var runDir string
			if _, runDir, err = selection.resolve(""); err == nil {
				var run report.Run
				run, err = report.LoadRun(runDir)
				results, title = run.Results, run.Title()
			}
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitError
		}
		if err := report.WriteSummary(stdout, results, report.SummaryOptions{Title: title, NoColor: *noColor || colorDisabled(stdout)}); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
