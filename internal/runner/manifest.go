package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ManifestFile is the run metadata file name inside a run directory.
const ManifestFile = "run.json"

// RepoMetadata records the git state of the working directory, when known.
type RepoMetadata struct {
	Name   string `json:"name"`
	Commit string `json:"commit"`
	Branch string `json:"branch"`
	Dirty  bool   `json:"dirty"`
}

// RunManifest describes how a run was produced.
type RunManifest struct {
	RunID       string         `json:"run_id"`
	Benchmark   string         `json:"benchmark"`
	Kind        string         `json:"kind"`
	Model       string         `json:"model"`
	Dataset     string         `json:"dataset"`
	Workers     int            `json:"workers"`
	Limit       int            `json:"limit"`
	TaskFilter  string         `json:"task_filter,omitempty"`
	TaskCounts  map[string]int `json:"task_counts,omitempty"`
	ResultsPath string         `json:"results_path"`
	Repo        *RepoMetadata  `json:"repo,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
}

// ReadManifest loads run.json from path.
func ReadManifest(path string) (RunManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunManifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var manifest RunManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return RunManifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return manifest, nil
}
