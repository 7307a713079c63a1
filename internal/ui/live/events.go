package live

import "omnibench/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventSample delivers a sample status update.
	EventSample
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind   EventKind
	Run    runner.RunInfo
	Sample runner.SampleEvent
	End    runner.RunEnd
}
