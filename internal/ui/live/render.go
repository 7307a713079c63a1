package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		elapsed = now.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Run " + state.RunID
	if state.Benchmark != "" {
		line += " | " + state.Benchmark
	}
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Queued: " + fmtInt(counts.Queued) +
		" Running: " + fmtInt(counts.Running) +
		" Done: " + fmtInt(counts.Done) + "/" + fmtInt(max(state.Total, len(state.Rows))) +
		" Succeeded: " + fmtInt(counts.Succeeded) +
		" Failed: " + fmtInt(counts.Failed)
	if state.Kind == "ocr" {
		line += " Matched: " + fmtInt(counts.Matched)
	}
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderRunLine renders the model and worker line.
func renderRunLine(state State, noColor bool) string {
	if state.Model == "" && state.Workers == 0 {
		return ""
	}
	line := "Model " + state.Model
	if state.Kind != "" {
		line += " | " + state.Kind
	}
	if state.Workers > 0 {
		line += " | Workers: " + fmtInt(state.Workers)
	}
	return stylize(line, noColor, lipgloss.Color("240"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
