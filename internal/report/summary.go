package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"omnibench/internal/runner"
)

// SummaryOptions controls terminal summary output.
type SummaryOptions struct {
	Title   string
	NoColor bool
}

// WriteSummary prints the aggregate block for results.
func WriteSummary(w io.Writer, results Results, opts SummaryOptions) error {
	switch {
	case results.OCR != nil:
		return writeOCRSummary(w, results.OCR.Statistics, opts)
	case results.STT != nil:
		return writeSTTSummary(w, results.STT.Summary, opts)
	default:
		return ErrUnknownResults
	}
}

func writeOCRSummary(w io.Writer, stats runner.OCRStatistics, opts SummaryOptions) error {
	title := opts.Title
	if title == "" {
		title = "OCR Results"
	}
	lines := []string{
		heading("=== "+title+" ===", opts.NoColor),
		fmt.Sprintf("Total samples: %d", stats.TotalSamples),
		fmt.Sprintf("API Success: %d", stats.APISuccess),
		fmt.Sprintf("API Failed: %d", stats.APIFailed),
		fmt.Sprintf("Text Correct: %d", stats.TextCorrect),
		fmt.Sprintf("API Success Rate: %s", formatPercent(stats.APISuccessRate)),
		fmt.Sprintf("Text Accuracy: %s", formatPercent(stats.TextAccuracy)),
		fmt.Sprintf("Average TEDS: %s", stats.AvgTEDS),
		fmt.Sprintf("Average IoU: %s", stats.AvgIoU),
		fmt.Sprintf("Average VQA ANLS: %s", stats.AvgVQAANLS),
		fmt.Sprintf("Average BLEU: %s", stats.AvgBLEU),
		fmt.Sprintf("Average F-measure: %s", stats.AvgFMeasure),
		fmt.Sprintf("Average ANLS: %s", stats.AvgANLS),
	}
	if stats.APISuccess > 0 {
		lines = append(lines,
			fmt.Sprintf("Average TTFT: %s", formatSeconds(stats.AvgTTFT)),
			fmt.Sprintf("Average E2E: %s", formatSeconds(stats.AvgE2E)),
			fmt.Sprintf("P50 E2E: %s", formatSeconds(stats.P50E2E)),
			fmt.Sprintf("P95 E2E: %s", formatSeconds(stats.P95E2E)),
			fmt.Sprintf("P99 E2E: %s", formatSeconds(stats.P99E2E)),
		)
	}
	return writeLines(w, lines)
}

func writeSTTSummary(w io.Writer, summary runner.STTSummary, opts SummaryOptions) error {
	title := opts.Title
	if title == "" {
		title = "STT Results"
	}
	if summary.Samples == 0 {
		return writeLines(w, []string{
			heading("=== "+title+" ===", opts.NoColor),
			fmt.Sprintf("No successful results! (%d failed)", summary.Failed),
		})
	}
	return writeLines(w, []string{
		heading("=== "+title+" ===", opts.NoColor),
		fmt.Sprintf("Samples processed: %d", summary.Samples),
		fmt.Sprintf("Failed: %d", summary.Failed),
		"",
		subheading("Accuracy Metrics:", opts.NoColor),
		fmt.Sprintf("CER: %s (±%s)", formatScore(summary.CERMean), formatScore(summary.CERStd)),
		fmt.Sprintf("WER: %s (±%s)", formatScore(summary.WERMean), formatScore(summary.WERStd)),
		"",
		subheading("Latency Metrics (seconds):", opts.NoColor),
		fmt.Sprintf("TTFT - P50: %.3f, P95: %.3f, P99: %.3f", summary.TTFTP50, summary.TTFTP95, summary.TTFTP99),
		fmt.Sprintf("E2E  - P50: %.3f, P95: %.3f, P99: %.3f", summary.E2EP50, summary.E2EP95, summary.E2EP99),
	})
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func heading(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render(text)
}

func subheading(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(text)
}
