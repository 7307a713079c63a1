package cli

import (
	"strings"
	"testing"
)

func TestRunWithoutArgsPrintsUsage(t *testing.T) {
	code, stdout, _ := runCLI(t)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	for _, name := range []string{"init", "validate", "run", "score", "analyze", "report", "ingest", "history", "serve"} {
		if !strings.Contains(stdout, "  "+name) {
			t.Fatalf("usage missing %s:\n%s", name, stdout)
		}
	}
}

func TestRunHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "--help")
	if code != ExitOK || !strings.Contains(stdout, "omnibench <command>") {
		t.Fatalf("unexpected help output (%d): %s", code, stdout)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "nope")
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(stderr, "Unknown command: nope") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestCommandHelp(t *testing.T) {
	for _, cmd := range commands {
		t.Run(cmd.Name, func(t *testing.T) {
			code, stdout, _ := runCLI(t, cmd.Name, "--help")
			if code != ExitOK {
				t.Fatalf("expected exit %d, got %d", ExitOK, code)
			}
			if !strings.Contains(stdout, "omnibench "+cmd.Name) {
				t.Fatalf("expected usage for %s, got %q", cmd.Name, stdout)
			}
		})
	}
}

func TestCommandsRejectBadFlags(t *testing.T) {
	for _, name := range []string{"validate", "run", "score", "report", "ingest", "history", "serve"} {
		t.Run(name, func(t *testing.T) {
			code, _, stderr := runCLI(t, name, "--definitely-not-a-flag")
			if code != ExitUsage {
				t.Fatalf("expected exit %d, got %d", ExitUsage, code)
			}
			if !strings.Contains(stderr, "invalid arguments") {
				t.Fatalf("unexpected stderr: %s", stderr)
			}
		})
	}
}
