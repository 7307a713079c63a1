package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"omnibench/internal/runner"
)

// formatSampleLabel returns the display id for a sample.
func formatSampleLabel(index int, id string) string {
	if id != "" {
		return id
	}
	return formatIndex(index)
}

// formatIndex formats a sample index.
func formatIndex(index int) string {
	return "#" + pad2(index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatTaskType truncates task types for display.
func formatTaskType(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	const limit = 32
	runes := []rune(normalized)
	if len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

// formatStatus renders a status string for a row.
func formatStatus(row SampleRow, noColor bool) string {
	label := statusLabel(row)
	if noColor {
		return label
	}
	return statusStyle(row).Render(label)
}

// statusLabel maps row status to a display label.
func statusLabel(row SampleRow) string {
	switch row.Status {
	case runner.SampleQueued:
		return "queued"
	case runner.SampleRunning:
		return "running"
	case runner.SampleSucceeded:
		if row.TaskType != "" && row.Matched {
			return "match"
		}
		return "done"
	case runner.SampleFailed:
		return "failed"
	default:
		return string(row.Status)
	}
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row SampleRow, now time.Time) string {
	if row.EndToEnd > 0 {
		return formatDuration(row.EndToEnd)
	}
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return formatDuration(row.FinishedAt.Sub(row.StartedAt))
	}
	if !row.StartedAt.IsZero() {
		return formatDuration(now.Sub(row.StartedAt))
	}
	return ""
}

// formatTTFT renders time to first token, blank until known.
func formatTTFT(row SampleRow) string {
	if row.TTFT <= 0 {
		return ""
	}
	return formatDuration(row.TTFT)
}

// formatDetail shows the error for failed rows and the score for STT rows.
func formatDetail(row SampleRow) string {
	if row.Error != "" {
		return truncate(row.Error, 60)
	}
	if row.Status == runner.SampleSucceeded && row.TaskType == "" {
		return "cer " + strconv.FormatFloat(row.Score, 'f', 3, 64)
	}
	return ""
}

func truncate(text string, limit int) string {
	runes := []rune(strings.Join(strings.Fields(text), " "))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit-3]) + "..."
}

// statusStyle selects a style for a given row.
func statusStyle(row SampleRow) lipgloss.Style {
	color := lipgloss.Color("246")
	switch row.Status {
	case runner.SampleSucceeded:
		color = lipgloss.Color("42")
		if row.TaskType != "" && !row.Matched {
			color = lipgloss.Color("220")
		}
	case runner.SampleFailed:
		color = lipgloss.Color("196")
	case runner.SampleRunning:
		color = lipgloss.Color("33")
	}
	return lipgloss.NewStyle().Foreground(color)
}
