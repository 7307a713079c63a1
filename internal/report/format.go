package report

import "fmt"

// formatPercent renders a percentage that is already scaled to 0..100.
func formatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

func formatSeconds(seconds float64) string {
	return fmt.Sprintf("%.3fs", seconds)
}

func formatScore(value float64) string {
	return fmt.Sprintf("%.4f", value)
}
