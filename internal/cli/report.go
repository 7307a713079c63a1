package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"omnibench/internal/report"
)

// runSelection names a run by benchmark and optional run id.
type runSelection struct {
	configPath string
	benchmark  string
	runID      string
}

func (s *runSelection) register(fs interface {
	StringVar(p *string, name, value, usage string)
}) {
	fs.StringVar(&s.configPath, "config", "", "Path to config file (default: search for .omnibench/config.yml)")
	fs.StringVar(&s.benchmark, "benchmark", "", "Benchmark id (default: default_benchmark)")
	fs.StringVar(&s.runID, "run", "", `Run id or "latest" (default: latest run of the benchmark)`)
}

// resolve loads the project and locates the selected run directory.
func (s runSelection) resolve(outputOverride string) (project, string, error) {
	proj, err := loadProject(s.configPath)
	if err != nil {
		return project{}, "", err
	}
	benchmark := strings.TrimSpace(s.benchmark)
	if ref := strings.TrimSpace(s.runID); benchmark == "" && (ref == "" || ref == "latest") {
		benchmark = proj.cfg.DefaultBenchmark
	}
	runDir, err := report.ResolveRun(proj.outputDir(outputOverride), benchmark, s.runID)
	if err != nil {
		return project{}, "", fmt.Errorf("resolve run: %w", err)
	}
	return proj, runDir, nil
}

func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		var selection runSelection
		selection.register(fs)
		outputPath := fs.String("output", "", "Report output path (default: <run dir>/report.html)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, fs, stderr) {
			return ExitUsage
		}

		_, runDir, err := selection.resolve("")
		if err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		run, err := report.LoadRun(runDir)
		if err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}

		var buf bytes.Buffer
		if err := report.RenderRunHTML(context.Background(), &buf, run); err != nil {
			fmt.Fprintf(stderr, "Report failed: render: %v\n", err)
			return ExitError
		}
		reportPath := *outputPath
		if reportPath == "" {
			reportPath = filepath.Join(runDir, "report.html")
		}
		if err := os.WriteFile(reportPath, buf.Bytes(), 0o644); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Report written to %s\n", reportPath)
		return ExitOK
	}
}
