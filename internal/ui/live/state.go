package live

import (
	"time"

	"omnibench/internal/runner"
)

// SampleRow holds UI state for a single sample.
type SampleRow struct {
	Index      int
	ID         string
	TaskType   string
	Status     runner.SampleEventType
	Matched    bool
	Score      float64
	TTFT       time.Duration
	EndToEnd   time.Duration
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued    int
	Running   int
	Done      int
	Succeeded int
	Failed    int
	Matched   int
}

// State captures the live UI state for a benchmark run.
type State struct {
	RunID     string
	Benchmark string
	Kind      string
	Model     string
	Workers   int
	Total     int
	StartedAt time.Time
	Finished  bool
	LastEvent string
	Rows      []SampleRow
	Counts    StatusCounts
}
