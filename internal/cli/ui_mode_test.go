package cli

import (
	"io"
	"testing"
)

// TestResolveUIMode verifies ui mode decision logic.
func TestResolveUIMode(t *testing.T) {
	cases := []struct {
		name       string
		mode       string
		verbose    bool
		isTTY      bool
		expectLive bool
		wantWarn   bool
		wantErr    bool
	}{
		{name: "auto tty", mode: "auto", isTTY: true, expectLive: true},
		{name: "empty means auto", mode: "", isTTY: true, expectLive: true},
		{name: "auto non-tty", mode: "auto", isTTY: false, expectLive: false},
		{name: "plain", mode: "plain", isTTY: true, expectLive: false},
		{name: "verbose disables", mode: "auto", verbose: true, isTTY: true, expectLive: false},
		{name: "verbose live warning", mode: "live", verbose: true, isTTY: true, expectLive: false, wantWarn: true},
		{name: "live tty", mode: "LIVE", isTTY: true, expectLive: true},
		{name: "live non-tty warning", mode: "live", isTTY: false, expectLive: false, wantWarn: true},
		{name: "invalid mode", mode: "nope", isTTY: true, wantErr: true},
	}

	originalTerminal := isTerminal
	originalEnv := lookupEnv
	t.Cleanup(func() {
		isTerminal = originalTerminal
		lookupEnv = originalEnv
	})
	lookupEnv = func(string) (string, bool) { return "", false }

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			isTerminal = func(_ io.Writer) bool { return tc.isTTY }
			decision, err := resolveUIMode(tc.mode, tc.verbose, nil)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if decision.useLive != tc.expectLive {
				t.Fatalf("expected useLive=%v, got %v", tc.expectLive, decision.useLive)
			}
			if tc.wantWarn && decision.warning == "" {
				t.Fatalf("expected warning")
			}
			if !tc.wantWarn && decision.warning != "" {
				t.Fatalf("did not expect warning, got %q", decision.warning)
			}
			if decision.noColor == tc.isTTY {
				t.Fatalf("expected noColor=%v off-terminal only", !tc.isTTY)
			}
		})
	}
}

func TestResolveUIModeHonorsNoColor(t *testing.T) {
	originalTerminal := isTerminal
	originalEnv := lookupEnv
	t.Cleanup(func() {
		isTerminal = originalTerminal
		lookupEnv = originalEnv
	})
	isTerminal = func(io.Writer) bool { return true }
	lookupEnv = func(key string) (string, bool) { return "1", key == "NO_COLOR" }

	decision, err := resolveUIMode("auto", false, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.useLive || !decision.noColor {
		t.Fatalf("expected live UI without color, got %+v", decision)
	}
}
