package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"omnibench/internal/dataset"
	"omnibench/internal/runner"
)

// ErrUnknownResults reports a results file that is neither an OCR nor an
// STT payload.
var ErrUnknownResults = errors.New("invalid results format: expected 'summary' or 'detailed_results' (stt) or 'results' (ocr) key")

// LoadResults reads a results file and detects its kind from the top-level
// keys. Missing aggregates are recomputed from the per-sample entries.
func LoadResults(path string) (Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Results{}, err
	}
	return ParseResults(data)
}

// ParseResults decodes a results payload. See LoadResults.
func ParseResults(data []byte) (Results, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return Results{}, fmt.Errorf("invalid JSON format: %w", err)
	}
	_, hasSummary := keys["summary"]
	_, hasDetailed := keys["detailed_results"]
	_, hasResults := keys["results"]
	_, hasStatistics := keys["statistics"]

	switch {
	case hasSummary || hasDetailed:
		var stt runner.STTReport
		if err := json.Unmarshal(data, &stt); err != nil {
			return Results{}, fmt.Errorf("decode stt results: %w", err)
		}
		if !hasSummary {
			if err := defaultAPISuccess(keys["detailed_results"], stt.Results); err != nil {
				return Results{}, err
			}
			stt.Summary = runner.AggregateSTT(stt.Results)
		}
		return Results{Kind: dataset.KindSTT, STT: &stt}, nil
	case hasResults:
		var ocr runner.OCRReport
		if err := json.Unmarshal(data, &ocr); err != nil {
			return Results{}, fmt.Errorf("decode ocr results: %w", err)
		}
		if !hasStatistics {
			ocr.Statistics = runner.AggregateOCR(ocr.Results)
		}
		return Results{Kind: dataset.KindOCR, OCR: &ocr}, nil
	default:
		return Results{}, ErrUnknownResults
	}
}

// defaultAPISuccess marks entries without an api_success field as
// successful. Older result files only listed successful samples.
func defaultAPISuccess(raw json.RawMessage, results []runner.STTSampleResult) error {
	var flags []struct {
		APISuccess *bool `json:"api_success"`
	}
	if err := json.Unmarshal(raw, &flags); err != nil {
		return fmt.Errorf("decode stt results: %w", err)
	}
	for i := range flags {
		if i < len(results) && flags[i].APISuccess == nil {
			results[i].APISuccess = true
		}
	}
	return nil
}

// LoadRun reads the manifest and results of a run directory.
func LoadRun(runDir string) (Run, error) {
	manifest, err := runner.ReadManifest(filepath.Join(runDir, runner.ManifestFile))
	if err != nil {
		return Run{}, err
	}
	resultsPath := filepath.Join(runDir, "results.json")
	if manifest.ResultsPath != "" {
		if _, err := os.Stat(manifest.ResultsPath); err == nil {
			resultsPath = manifest.ResultsPath
		}
	}
	results, err := LoadResults(resultsPath)
	if err != nil {
		return Run{}, fmt.Errorf("load %s: %w", resultsPath, err)
	}
	return Run{Dir: runDir, Manifest: manifest, Results: results}, nil
}

// ResolveRun finds a run directory under outputDir. An empty ref or "latest"
// selects the latest run of benchmark; otherwise ref is a run ID, searched
// under benchmark or, when benchmark is empty, under every benchmark.
func ResolveRun(outputDir, benchmark, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	benchmark = strings.TrimSpace(benchmark)
	if ref == "" || ref == "latest" {
		if benchmark == "" {
			return "", fmt.Errorf("benchmark or run ID is required")
		}
		return findLatestRunDir(filepath.Join(outputDir, benchmark))
	}
	if benchmark != "" {
		runDir := filepath.Join(outputDir, benchmark, ref)
		if isDir(runDir) {
			return runDir, nil
		}
		return "", fmt.Errorf("run %s not found for benchmark %s", ref, benchmark)
	}
	return findRunByID(outputDir, ref)
}

// ListRuns returns every run directory under outputDir, newest first.
func ListRuns(outputDir string) ([]string, error) {
	benchmarks, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, err
	}
	type entry struct{ runID, dir string }
	var found []entry
	for _, benchmark := range benchmarks {
		if !benchmark.IsDir() {
			continue
		}
		runs, err := os.ReadDir(filepath.Join(outputDir, benchmark.Name()))
		if err != nil {
			return nil, err
		}
		for _, run := range runs {
			dir := filepath.Join(outputDir, benchmark.Name(), run.Name())
			if run.IsDir() && fileExists(filepath.Join(dir, runner.ManifestFile)) {
				found = append(found, entry{runID: run.Name(), dir: dir})
			}
		}
	}
	sort.Slice(found, func(i, j int) bool { return runner.CompareRunIDs(found[i].runID, found[j].runID) > 0 })
	dirs := make([]string, 0, len(found))
	for _, item := range found {
		dirs = append(dirs, item.dir)
	}
	return dirs, nil
}

func findLatestRunDir(benchmarkDir string) (string, error) {
	entries, err := os.ReadDir(benchmarkDir)
	if err != nil {
		return "", err
	}
	runIDs := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			runIDs = append(runIDs, entry.Name())
		}
	}
	if len(runIDs) == 0 {
		return "", fmt.Errorf("no runs found in %s", benchmarkDir)
	}
	slices.SortFunc(runIDs, runner.CompareRunIDs)
	return filepath.Join(benchmarkDir, runIDs[len(runIDs)-1]), nil
}

func findRunByID(outputDir, runID string) (string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		runDir := filepath.Join(outputDir, entry.Name(), runID)
		if isDir(runDir) {
			return runDir, nil
		}
	}
	return "", fmt.Errorf("run %s not found", runID)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
