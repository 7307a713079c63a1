package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds unit tests that talk to local servers or DuckDB.
const DefaultTimeout = 5 * time.Second

// pollInterval is how often WaitFor re-runs its probe.
const pollInterval = 20 * time.Millisecond

// deadliner is implemented by *testing.T but not by testing.TB.
type deadliner interface {
	Deadline() (time.Time, bool)
}

// Context returns a context cancelled when the test ends, the timeout
// elapses, or one second before the test deadline, whichever comes first.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if d, ok := t.(deadliner); ok {
		if deadline, ok := d.Deadline(); ok {
			if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// WaitFor runs probe until it returns nil, failing the test with the last
// probe error once timeout elapses.
func WaitFor(t testing.TB, timeout time.Duration, probe func() error) {
	t.Helper()
	ctx := Context(t, timeout)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		err := probe()
		if err == nil {
			return
		}
		select {
		case <-ctx.Done():
			t.Fatalf("condition not met after %s: %v", timeout, err)
		case <-ticker.C:
		}
	}
}
