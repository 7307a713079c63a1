// Package report loads finished runs and renders them as terminal summaries
// or HTML pages.
package report

import (
	"omnibench/internal/dataset"
	"omnibench/internal/runner"
)

// Results is a decoded results.json of either benchmark kind.
type Results struct {
	Kind dataset.Kind
	OCR  *runner.OCRReport
	STT  *runner.STTReport
}

// Run pairs a run directory with its manifest and results.
type Run struct {
	Dir      string
	Manifest runner.RunManifest
	Results  Results
}

// Title returns a short label for the run.
func (r Run) Title() string {
	if r.Manifest.Benchmark == "" {
		return r.Manifest.RunID
	}
	return r.Manifest.Benchmark + " / " + r.Manifest.RunID
}
