package runner

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPaths describes filesystem locations for run outputs.
type OutputPaths struct {
	Root      string
	Benchmark string
	RunID     string
	// ResultsFile overrides the default results.json location.
	ResultsFile string
}

// NewOutputPaths validates and constructs output paths metadata.
func NewOutputPaths(root, benchmark, runID string) (OutputPaths, error) {
	if strings.TrimSpace(root) == "" {
		return OutputPaths{}, fmt.Errorf("output root is empty")
	}
	if strings.TrimSpace(benchmark) == "" {
		return OutputPaths{}, fmt.Errorf("benchmark is empty")
	}
	if strings.TrimSpace(runID) == "" {
		return OutputPaths{}, fmt.Errorf("run ID is empty")
	}
	return OutputPaths{
		Root:      root,
		Benchmark: benchmark,
		RunID:     runID,
	}, nil
}

// RunDir returns the directory for a specific run.
func (o OutputPaths) RunDir() string {
	return filepath.Join(o.Root, o.Benchmark, o.RunID)
}

// ResultsPath returns the path to results.json.
func (o OutputPaths) ResultsPath() string {
	if o.ResultsFile != "" {
		return o.ResultsFile
	}
	return filepath.Join(o.RunDir(), "results.json")
}

// ManifestPath returns the path to run.json.
func (o OutputPaths) ManifestPath() string {
	return filepath.Join(o.RunDir(), ManifestFile)
}

// ReportPath returns the path to the HTML report.
func (o OutputPaths) ReportPath() string {
	return filepath.Join(o.RunDir(), "report.html")
}

// MetricsPath returns the path to the Prometheus text snapshot.
func (o OutputPaths) MetricsPath() string {
	return filepath.Join(o.RunDir(), "metrics.prom")
}
