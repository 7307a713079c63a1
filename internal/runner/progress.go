package runner

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// ProgressObserver prints one line per finished sample. It is the plain
// alternative to the live terminal view.
type ProgressObserver struct {
	out   io.Writer
	total atomic.Int64
	done  atomic.Int64
}

// NewProgressObserver writes progress lines to w.
func NewProgressObserver(w io.Writer) *ProgressObserver {
	return &ProgressObserver{out: &lockedWriter{w: w}}
}

func (p *ProgressObserver) OnRunStart(info RunInfo) {
	p.total.Store(int64(info.Total))
	p.done.Store(0)
	fmt.Fprintf(p.out, "Processing %d samples with %d workers (run %s)\n", info.Total, info.Workers, info.RunID)
}

func (p *ProgressObserver) OnSampleEvent(event SampleEvent) {
	switch event.Type {
	case SampleSucceeded:
		done := p.done.Add(1)
		fmt.Fprintf(p.out, "[%d/%d] ok %s %.3fs\n", done, p.total.Load(), event.SampleID, event.EndToEnd.Seconds())
	case SampleFailed:
		done := p.done.Add(1)
		fmt.Fprintf(p.out, "[%d/%d] failed %s: %s\n", done, p.total.Load(), event.SampleID, event.Error)
	}
}

func (p *ProgressObserver) OnRunEnd(end RunEnd) {
	fmt.Fprintf(p.out, "Finished %d samples: %d succeeded, %d failed in %s\n", end.Total, end.Succeeded, end.Failed, end.Duration.Round(time.Millisecond))
}
