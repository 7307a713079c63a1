package runner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReportRenderer writes an HTML report.
type ReportRenderer func(w io.Writer) error

// RunOutputs bundles everything written for a finished run.
type RunOutputs struct {
	Manifest RunManifest
	// Payload is an OCRReport or STTReport.
	Payload any
	Metrics *Metrics
	Report  ReportRenderer
}

// WriteRunOutputs creates the run directory and writes results.json,
// run.json, and the optional report and metrics snapshot.
func WriteRunOutputs(paths OutputPaths, outputs RunOutputs) error {
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if dir := filepath.Dir(paths.ResultsPath()); dir != paths.RunDir() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create results dir: %w", err)
		}
	}
	if err := WriteJSON(paths.ResultsPath(), outputs.Payload); err != nil {
		return err
	}
	manifest := outputs.Manifest
	manifest.ResultsPath = paths.ResultsPath()
	if err := WriteJSON(paths.ManifestPath(), manifest); err != nil {
		return err
	}
	if outputs.Report != nil {
		if err := writeReport(paths.ReportPath(), outputs.Report); err != nil {
			return err
		}
	}
	if outputs.Metrics != nil {
		if err := outputs.Metrics.WriteTextfile(paths.MetricsPath()); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes payload as two-space indented JSON without HTML escaping.
func WriteJSON(path string, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeReport(path string, render ReportRenderer) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
