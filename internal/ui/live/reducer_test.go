package live

import (
	"strings"
	"testing"
	"time"

	"omnibench/internal/runner"
	"omnibench/internal/testutil"
)

// TestReduceSampleLifecycle verifies core status transitions are recorded.
func TestReduceSampleLifecycle(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		start := time.Now()
		state := State{}
		state = Reduce(state, event(0, runner.SampleQueued, "", start))
		state = Reduce(state, event(0, runner.SampleRunning, "", start))
		done := event(0, runner.SampleSucceeded, "", start.Add(150*time.Millisecond))
		done.Matched = true
		done.EndToEnd = 150 * time.Millisecond
		done.TTFT = 40 * time.Millisecond
		state = Reduce(state, done)

		row := state.Rows[0]
		if row.Status != runner.SampleSucceeded {
			t.Fatalf("expected succeeded status, got %s", row.Status)
		}
		if !row.Matched || row.TTFT != 40*time.Millisecond {
			t.Fatalf("expected match and ttft to be set, got %+v", row)
		}
		if row.StartedAt != start {
			t.Fatalf("expected start time to be recorded")
		}
		if state.Counts.Succeeded != 1 || state.Counts.Matched != 1 || state.Counts.Done != 1 {
			t.Fatalf("unexpected counts: %+v", state.Counts)
		}
		if !strings.Contains(state.LastEvent, "completed in 150ms") {
			t.Fatalf("unexpected last event %q", state.LastEvent)
		}
	})
}

// TestReduceGrowsRowsForOutOfOrderEvents verifies rows are created up to the event index.
func TestReduceGrowsRowsForOutOfOrderEvents(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := Reduce(State{}, event(3, runner.SampleRunning, "", time.Now()))
		if len(state.Rows) != 4 {
			t.Fatalf("expected 4 rows, got %d", len(state.Rows))
		}
		if state.Counts.Queued != 3 || state.Counts.Running != 1 {
			t.Fatalf("unexpected counts: %+v", state.Counts)
		}
	})
}

// TestReduceFailureRecordsError verifies failed samples keep their error.
func TestReduceFailureRecordsError(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := Reduce(State{}, event(0, runner.SampleFailed, "oracle error (500)", time.Now()))
		if state.Rows[0].Error != "oracle error (500)" {
			t.Fatalf("expected error to be recorded")
		}
		if state.Counts.Failed != 1 {
			t.Fatalf("expected failed count, got %d", state.Counts.Failed)
		}
		if !strings.Contains(state.LastEvent, "failed: oracle error (500)") {
			t.Fatalf("unexpected last event %q", state.LastEvent)
		}
	})
}

// TestReduceIgnoresLateRunningEvent verifies terminal rows stay terminal.
func TestReduceIgnoresLateRunningEvent(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := Reduce(State{}, event(0, runner.SampleSucceeded, "", time.Now()))
		state = Reduce(state, event(0, runner.SampleRunning, "", time.Now()))
		if state.Rows[0].Status != runner.SampleSucceeded {
			t.Fatalf("expected terminal status to stick, got %s", state.Rows[0].Status)
		}
	})
}

func TestRowsForStateFormatsColumns(t *testing.T) {
	state := State{Rows: []SampleRow{
		{Index: 0, ID: "s1", TaskType: "text recognition en", Status: runner.SampleSucceeded, Matched: true, TTFT: 100 * time.Millisecond, EndToEnd: 500 * time.Millisecond},
		{Index: 1, Status: runner.SampleSucceeded, Score: 0.125, EndToEnd: time.Second},
		{Index: 2, Status: runner.SampleFailed, Error: "boom"},
	}}
	rows := rowsForState(state, time.Now(), true)
	if rows[0][0] != "s1" || rows[0][2] != "match" || rows[0][3] != "100ms" || rows[0][4] != "500ms" {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
	if rows[1][0] != "#02" || rows[1][5] != "cer 0.125" {
		t.Fatalf("unexpected stt row: %v", rows[1])
	}
	if rows[2][2] != "failed" || rows[2][5] != "boom" {
		t.Fatalf("unexpected failed row: %v", rows[2])
	}
}

func TestApplyEventRunLifecycle(t *testing.T) {
	model := NewModel(nil, Options{NoColor: true})
	model = applyEvent(model, Event{Kind: EventRunStart, Run: runner.RunInfo{RunID: "run-1", Benchmark: "ocrbench", Kind: "ocr", Model: "m", Total: 2, Workers: 4}})
	model = applyEvent(model, Event{Kind: EventSample, Sample: runner.SampleEvent{Index: 1, SampleID: "b", TaskType: "t", Type: runner.SampleSucceeded, Matched: true}})
	model = applyEvent(model, Event{Kind: EventRunEnd, End: runner.RunEnd{Total: 2, Succeeded: 1, Failed: 1, Duration: time.Second}})

	view := model.View()
	for _, want := range []string{"Run run-1 | ocrbench", "Done: 1/2", "Matched: 1", "Model m | ocr | Workers: 4", "Finished 2 samples: 1 succeeded, 1 failed in 1s"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

// event builds a SampleEvent for testing.
func event(index int, kind runner.SampleEventType, errMsg string, when time.Time) runner.SampleEvent {
	return runner.SampleEvent{
		Benchmark: "ocrbench",
		Index:     index,
		TaskType:  "text recognition en",
		Type:      kind,
		Error:     errMsg,
		EmittedAt: when,
	}
}

// runWithTimeout executes a test body with a timeout.
func runWithTimeout(t *testing.T, timeout time.Duration, fn func()) {
	t.Helper()
	ctx := testutil.Context(t, timeout)
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("test timed out")
	}
}
