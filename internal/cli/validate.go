package cli

import (
	"fmt"
	"io"

	"omnibench/internal/config"
	"omnibench/internal/dataset"
)

// maxReportedIssues caps the record issues printed per dataset.
const maxReportedIssues = 20

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .omnibench/config.yml)")
		checkDatasets := flags.Bool("datasets", false, "Validate every dataset record against its schema")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, flags, stderr) {
			return ExitUsage
		}

		proj, err := loadProject(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, "Config OK")
		if !*checkDatasets {
			return ExitOK
		}

		failed := false
		for _, benchmark := range proj.cfg.Benchmarks {
			path := config.ResolvePath(proj.root, benchmark.Dataset)
			count, issues, err := dataset.ValidateFile(path, dataset.Kind(benchmark.Type), maxReportedIssues)
			if err != nil {
				fmt.Fprintf(stderr, "Dataset %s: %v\n", benchmark.ID, err)
				failed = true
				continue
			}
			if len(issues) > 0 {
				fmt.Fprintf(stderr, "Dataset %s: invalid records among %d\n", benchmark.ID, count)
				for _, issue := range issues {
					fmt.Fprintf(stderr, "  - record %d: %s\n", issue.Index, issue.Message)
				}
				failed = true
				continue
			}
			fmt.Fprintf(stdout, "Dataset %s: %d records OK\n", benchmark.ID, count)
		}
		if failed {
			return ExitError
		}
		return ExitOK
	}
}
