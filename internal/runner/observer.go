package runner

import (
	"time"

	"go.uber.org/zap"
)

// SampleEventType identifies a sample status update for observers.
type SampleEventType string

const (
	// SampleQueued marks a sample known but not yet started.
	SampleQueued SampleEventType = "queued"
	// SampleRunning marks an oracle call in flight.
	SampleRunning SampleEventType = "running"
	// SampleSucceeded marks a scored sample.
	SampleSucceeded SampleEventType = "succeeded"
	// SampleFailed marks an oracle or media failure.
	SampleFailed SampleEventType = "failed"
)

// RunInfo describes a run as it starts.
type RunInfo struct {
	RunID     string
	Benchmark string
	Kind      string
	Model     string
	Total     int
	Workers   int
	StartedAt time.Time
}

// SampleEvent carries a single status update for a sample.
type SampleEvent struct {
	Benchmark string
	Index     int
	SampleID  string
	TaskType  string
	Type      SampleEventType
	// Matched is the OCR text match; Score is the STT character error rate.
	Matched   bool
	Score     float64
	TTFT      time.Duration
	EndToEnd  time.Duration
	Error     string
	EmittedAt time.Time
}

// RunEnd summarizes a finished run.
type RunEnd struct {
	RunID     string
	Benchmark string
	Total     int
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// RunObserver receives run lifecycle events for UI or logging. Sample events
// arrive from worker goroutines, so implementations must be safe for
// concurrent use.
type RunObserver interface {
	OnRunStart(info RunInfo)
	OnSampleEvent(event SampleEvent)
	OnRunEnd(end RunEnd)
}

type multiObserver []RunObserver

// MultiObserver fans events out to every non-nil observer.
func MultiObserver(observers ...RunObserver) RunObserver {
	filtered := make(multiObserver, 0, len(observers))
	for _, observer := range observers {
		if observer != nil {
			filtered = append(filtered, observer)
		}
	}
	return filtered
}

func (m multiObserver) OnRunStart(info RunInfo) {
	for _, observer := range m {
		observer.OnRunStart(info)
	}
}

func (m multiObserver) OnSampleEvent(event SampleEvent) {
	for _, observer := range m {
		observer.OnSampleEvent(event)
	}
}

func (m multiObserver) OnRunEnd(end RunEnd) {
	for _, observer := range m {
		observer.OnRunEnd(end)
	}
}

// LogObserver writes run events to a zap logger. Sample progress is logged
// at debug level.
type LogObserver struct {
	Logger *zap.Logger
}

func (o LogObserver) OnRunStart(info RunInfo) {
	o.Logger.Info("run started",
		zap.String("run_id", info.RunID),
		zap.String("benchmark", info.Benchmark),
		zap.String("kind", info.Kind),
		zap.String("model", info.Model),
		zap.Int("samples", info.Total),
		zap.Int("workers", info.Workers),
	)
}

func (o LogObserver) OnSampleEvent(event SampleEvent) {
	switch event.Type {
	case SampleSucceeded:
		o.Logger.Debug("sample scored",
			zap.Int("index", event.Index),
			zap.String("id", event.SampleID),
			zap.String("type", event.TaskType),
			zap.Bool("matched", event.Matched),
			zap.Float64("score", event.Score),
			zap.Duration("end_to_end", event.EndToEnd),
		)
	case SampleFailed:
		o.Logger.Warn("sample failed",
			zap.Int("index", event.Index),
			zap.String("id", event.SampleID),
			zap.String("error", event.Error),
		)
	}
}

func (o LogObserver) OnRunEnd(end RunEnd) {
	o.Logger.Info("run finished",
		zap.String("run_id", end.RunID),
		zap.Int("succeeded", end.Succeeded),
		zap.Int("failed", end.Failed),
		zap.Duration("duration", end.Duration),
	)
}

// emitter stamps and forwards sample events to an optional observer.
type emitter struct {
	observer  RunObserver
	benchmark string
	now       func() time.Time
}

func (e emitter) emit(event SampleEvent) {
	if e.observer == nil {
		return
	}
	event.Benchmark = e.benchmark
	event.EmittedAt = e.now()
	e.observer.OnSampleEvent(event)
}
