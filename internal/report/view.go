package report

import (
	"context"
	"fmt"
	"io"
	"path"

	"omnibench/internal/runner"
	"omnibench/internal/vcs"
)

const startedLayout = "2006-01-02 15:04:05"

// field is one labelled row of a two-column HTML table.
type field struct {
	Label string
	Value string
}

// RenderRunHTML renders a run report into w.
func RenderRunHTML(ctx context.Context, w io.Writer, run Run) error {
	return RunPage(run).Render(ctx, w)
}

func manifestFields(manifest runner.RunManifest) []field {
	fields := []field{
		{"Run ID", manifest.RunID},
		{"Benchmark", manifest.Benchmark},
		{"Kind", manifest.Kind},
		{"Model", manifest.Model},
		{"Dataset", manifest.Dataset},
		{"Workers", fmt.Sprint(manifest.Workers)},
	}
	if manifest.TaskFilter != "" {
		fields = append(fields, field{"Task filter", manifest.TaskFilter})
	}
	if repo := manifest.Repo; repo != nil && repo.Commit != "" {
		commit := vcs.ShortCommit(repo.Commit)
		if repo.Branch != "" {
			commit += " (" + repo.Branch + ")"
		}
		if repo.Dirty {
			commit += ", uncommitted changes"
		}
		fields = append(fields, field{"Commit", commit})
	}
	if !manifest.StartedAt.IsZero() {
		fields = append(fields, field{"Started", manifest.StartedAt.Format(startedLayout + " MST")})
	}
	if !manifest.FinishedAt.IsZero() && !manifest.StartedAt.IsZero() {
		fields = append(fields, field{"Duration", manifest.FinishedAt.Sub(manifest.StartedAt).String()})
	}
	return fields
}

func ocrStatisticFields(stats runner.OCRStatistics) []field {
	return []field{
		{"Total samples", fmt.Sprint(stats.TotalSamples)},
		{"API success", fmt.Sprint(stats.APISuccess)},
		{"API failed", fmt.Sprint(stats.APIFailed)},
		{"Text correct", fmt.Sprint(stats.TextCorrect)},
		{"API success rate", formatPercent(stats.APISuccessRate)},
		{"Text accuracy", formatPercent(stats.TextAccuracy)},
		{"Average TEDS", stats.AvgTEDS.String()},
		{"Average IoU", stats.AvgIoU.String()},
		{"Average VQA ANLS", stats.AvgVQAANLS.String()},
		{"Average BLEU", stats.AvgBLEU.String()},
		{"Average F-measure", stats.AvgFMeasure.String()},
		{"Average ANLS", stats.AvgANLS.String()},
		{"Average TTFT", formatSeconds(stats.AvgTTFT)},
		{"Average E2E", formatSeconds(stats.AvgE2E)},
		{"P50 / P95 / P99 E2E", formatSeconds(stats.P50E2E) + " / " + formatSeconds(stats.P95E2E) + " / " + formatSeconds(stats.P99E2E)},
	}
}

func sttSummaryFields(summary runner.STTSummary) []field {
	return []field{
		{"Samples", fmt.Sprint(summary.Samples)},
		{"Failed", fmt.Sprint(summary.Failed)},
		{"CER", formatScore(summary.CERMean) + " ± " + formatScore(summary.CERStd)},
		{"WER", formatScore(summary.WERMean) + " ± " + formatScore(summary.WERStd)},
		{"TTFT P50 / P95 / P99", fmt.Sprintf("%.3f / %.3f / %.3f", summary.TTFTP50, summary.TTFTP95, summary.TTFTP99)},
		{"E2E P50 / P95 / P99", fmt.Sprintf("%.3f / %.3f / %.3f", summary.E2EP50, summary.E2EP95, summary.E2EP99)},
	}
}

// runHref is the report server path of a run page.
func runHref(manifest runner.RunManifest) string {
	return path.Join("/runs", manifest.Benchmark, manifest.RunID) + "/"
}

func sampleCount(results Results) int {
	switch {
	case results.OCR != nil:
		return len(results.OCR.Results)
	case results.STT != nil:
		return len(results.STT.Results)
	}
	return 0
}
