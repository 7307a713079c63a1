package live

import (
	"fmt"
	"time"

	"omnibench/internal/runner"
)

// Reduce applies a sample event to the UI state.
func Reduce(state State, event runner.SampleEvent) State {
	state = ensureRow(state, event)
	state = applySampleEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, event runner.SampleEvent) State {
	if event.Index < 0 {
		return state
	}
	if event.Index < len(state.Rows) {
		return state
	}
	rows := make([]SampleRow, event.Index+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = SampleRow{Index: i, Status: runner.SampleQueued}
	}
	state.Rows = rows
	return state
}

// applySampleEvent updates a row with the given event. Terminal rows ignore
// late non-terminal updates.
func applySampleEvent(state State, event runner.SampleEvent) State {
	if event.Index < 0 || event.Index >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.Index]
	if row.ID == "" {
		row.ID = event.SampleID
	}
	if row.TaskType == "" {
		row.TaskType = event.TaskType
	}
	if isTerminalStatus(row.Status) && !isTerminalStatus(event.Type) {
		return state
	}
	row.Status = event.Type
	switch event.Type {
	case runner.SampleRunning:
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
	case runner.SampleSucceeded, runner.SampleFailed:
		if !event.EmittedAt.IsZero() {
			row.FinishedAt = event.EmittedAt
		}
		row.Matched = event.Matched
		row.Score = event.Score
		row.TTFT = event.TTFT
		row.EndToEnd = event.EndToEnd
		row.Error = event.Error
	}
	state.Rows[event.Index] = row
	return state
}

// isTerminalStatus reports whether a status is final.
func isTerminalStatus(status runner.SampleEventType) bool {
	return status == runner.SampleSucceeded || status == runner.SampleFailed
}

// recount recomputes status counts for the current rows.
func recount(rows []SampleRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.SampleQueued:
			counts.Queued++
		case runner.SampleRunning:
			counts.Running++
		case runner.SampleSucceeded:
			counts.Done++
			counts.Succeeded++
			if row.Matched {
				counts.Matched++
			}
		case runner.SampleFailed:
			counts.Done++
			counts.Failed++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.SampleEvent) string {
	label := formatSampleLabel(event.Index, event.SampleID)
	switch event.Type {
	case runner.SampleFailed:
		return fmt.Sprintf("%s failed: %s", label, event.Error)
	case runner.SampleSucceeded:
		return fmt.Sprintf("%s completed in %s", label, formatDuration(event.EndToEnd))
	}
	return ""
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(10 * time.Millisecond).String()
}
