package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// uiModeDecision captures how run progress is displayed.
type uiModeDecision struct {
	useLive bool
	noColor bool
	warning string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// lookupEnv reads environment variables; tests replace it.
var lookupEnv = os.LookupEnv

// resolveUIMode determines whether to enable the live UI. Verbose runs log
// every sample, so they always use plain output.
func resolveUIMode(mode string, verbose bool, stdout io.Writer) (uiModeDecision, error) {
	decision := uiModeDecision{noColor: colorDisabled(stdout)}
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = "auto"
	}
	switch normalized {
	case "auto":
		decision.useLive = !verbose && isTerminal(stdout)
	case "live":
		switch {
		case verbose:
			decision.warning = "Live UI is disabled with --verbose; using plain output."
		case isTerminal(stdout):
			decision.useLive = true
		default:
			decision.warning = "Live UI requested but stdout is not a TTY; falling back to plain output."
		}
	case "plain":
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
	return decision, nil
}

// colorDisabled honors NO_COLOR and disables styling off-terminal.
func colorDisabled(stdout io.Writer) bool {
	if _, ok := lookupEnv("NO_COLOR"); ok {
		return true
	}
	return !isTerminal(stdout)
}

// defaultIsTerminal inspects stdout for TTY support.
func defaultIsTerminal(stdout io.Writer) bool {
	if stdout == nil {
		return false
	}
	if file, ok := stdout.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stdout.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
