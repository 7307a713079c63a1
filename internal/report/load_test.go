package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"omnibench/internal/dataset"
	"omnibench/internal/runner"
	"omnibench/internal/stats"
)

func sampleOCRReport() runner.OCRReport {
	results := []runner.OCRSampleResult{
		{ID: "1", Type: "text recognition en", Question: "Read <this>", Answers: []string{"hello"}, Predict: "hello", APISuccess: true, TextMatch: true, AvgANLS: 1, TTFT: 0.1, EndToEnd: 0.5},
		{ID: "2", Type: "text recognition en", Question: "Read", Answers: []string{"world"}, Error: "oracle error (500): boom", EndToEnd: 0.2},
	}
	return runner.OCRReport{Results: results, Statistics: runner.AggregateOCR(results)}
}

func writeRun(t *testing.T, root, benchmark, runID string, payload any) string {
	t.Helper()
	paths, err := runner.NewOutputPaths(root, benchmark, runID)
	if err != nil {
		t.Fatalf("output paths: %v", err)
	}
	manifest := runner.RunManifest{
		RunID:     runID,
		Benchmark: benchmark,
		Kind:      "ocr",
		Model:     "test-model",
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if err := runner.WriteRunOutputs(paths, runner.RunOutputs{Manifest: manifest, Payload: payload}); err != nil {
		t.Fatalf("write outputs: %v", err)
	}
	return paths.RunDir()
}

// TestResolveRunByBenchmarkAndRunID verifies latest-run and run-ID resolution.
func TestResolveRunByBenchmarkAndRunID(t *testing.T) {
	root := t.TempDir()
	writeRun(t, root, "ocrbench", "20260101T000000Z-aaa", sampleOCRReport())
	latest := writeRun(t, root, "ocrbench", "20260102T000000Z-bbb", sampleOCRReport())
	other := writeRun(t, root, "stt", "20260103T000000Z-ccc", runner.STTReport{})

	resolved, err := ResolveRun(root, "ocrbench", "")
	if err != nil {
		t.Fatalf("resolve latest: %v", err)
	}
	if resolved != latest {
		t.Fatalf("expected latest run %s, got %s", latest, resolved)
	}
	writeRun(t, root, "ocrbench", "baseline", sampleOCRReport())
	if resolved, err = ResolveRun(root, "ocrbench", "latest"); err != nil || resolved != latest {
		t.Fatalf("expected hand-named run to sort before generated ids, got %s (%v)", resolved, err)
	}

	resolved, err = ResolveRun(root, "", "20260103T000000Z-ccc")
	if err != nil {
		t.Fatalf("resolve run id: %v", err)
	}
	if resolved != other {
		t.Fatalf("expected %s, got %s", other, resolved)
	}

	if _, err := ResolveRun(root, "ocrbench", "missing"); err == nil {
		t.Fatalf("expected missing run error")
	}
	if _, err := ResolveRun(root, "", ""); err == nil {
		t.Fatalf("expected error without benchmark or ref")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	root := t.TempDir()
	writeRun(t, root, "a", "20260101T000000Z-aaa", sampleOCRReport())
	writeRun(t, root, "b", "20260105T000000Z-bbb", runner.STTReport{})
	if err := os.MkdirAll(filepath.Join(root, "a", "not-a-run"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	dirs, err := ListRuns(root)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("expected 2 runs, got %v", dirs)
	}
	if filepath.Base(dirs[0]) != "20260105T000000Z-bbb" {
		t.Fatalf("expected newest run first, got %v", dirs)
	}
}

func TestLoadRunDetectsKind(t *testing.T) {
	root := t.TempDir()
	runDir := writeRun(t, root, "ocrbench", "run-1", sampleOCRReport())

	run, err := LoadRun(runDir)
	if err != nil {
		t.Fatalf("load run: %v", err)
	}
	if run.Results.Kind != dataset.KindOCR || run.Results.OCR == nil {
		t.Fatalf("expected OCR results, got %+v", run.Results)
	}
	if run.Results.OCR.Statistics.APISuccess != 1 || run.Results.OCR.Statistics.APIFailed != 1 {
		t.Fatalf("unexpected statistics: %+v", run.Results.OCR.Statistics)
	}
	if run.Title() != "ocrbench / run-1" {
		t.Fatalf("unexpected title %q", run.Title())
	}
}

func TestParseResultsRecomputesMissingAggregates(t *testing.T) {
	stt := `{"detailed_results": [
		{"sample_id": "a", "reference_text": "x", "predicted_text": "x", "cer": 0.2, "wer": 0.5, "ttft_seconds": 0.1, "end_to_end_seconds": 1, "api_success": true},
		{"sample_id": "b", "reference_text": "y", "predicted_text": "", "cer": 0, "wer": 0, "ttft_seconds": 0, "end_to_end_seconds": 0, "api_success": false, "error": "boom"}
	]}`
	results, err := ParseResults([]byte(stt))
	if err != nil {
		t.Fatalf("parse stt: %v", err)
	}
	if results.Kind != dataset.KindSTT {
		t.Fatalf("expected stt kind, got %s", results.Kind)
	}
	if results.STT.Summary.Samples != 1 || results.STT.Summary.Failed != 1 || results.STT.Summary.CERMean != 0.2 {
		t.Fatalf("unexpected recomputed summary: %+v", results.STT.Summary)
	}

	ocr := `{"results": [{"id": "1", "type": "t", "answers": ["a"], "predict": "a", "api_success": true, "text_match": true, "avg_anls": 1, "ttft": 0.1, "end_to_end": 0.3}]}`
	results, err = ParseResults([]byte(ocr))
	if err != nil {
		t.Fatalf("parse ocr: %v", err)
	}
	if results.OCR.Statistics.TextCorrect != 1 || results.OCR.Statistics.AvgANLS != stats.Some(1) {
		t.Fatalf("unexpected recomputed statistics: %+v", results.OCR.Statistics)
	}
}

func TestParseResultsRejectsUnknownShape(t *testing.T) {
	if _, err := ParseResults([]byte(`{"foo": 1}`)); !errors.Is(err, ErrUnknownResults) {
		t.Fatalf("expected ErrUnknownResults, got %v", err)
	}
	if _, err := ParseResults([]byte(`not json`)); err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Fatalf("expected JSON error, got %v", err)
	}
}

func TestWriteSummaryOCR(t *testing.T) {
	report := sampleOCRReport()
	var out bytes.Buffer
	if err := WriteSummary(&out, Results{Kind: dataset.KindOCR, OCR: &report}, SummaryOptions{NoColor: true}); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	for _, want := range []string{
		"=== OCR Results ===",
		"Total samples: 2",
		"API Success Rate: 50.0%",
		"Text Accuracy: 50.0%",
		"Average TEDS: N/A",
		"Average ANLS: 1.000",
		"P50 E2E: 0.500s",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in summary:\n%s", want, out.String())
		}
	}
}

func TestWriteSummarySTT(t *testing.T) {
	report := runner.STTReport{Summary: runner.STTSummary{Samples: 2, CERMean: 0.1, CERStd: 0.05, TTFTP50: 0.25}}
	var out bytes.Buffer
	if err := WriteSummary(&out, Results{Kind: dataset.KindSTT, STT: &report}, SummaryOptions{Title: "Analysis", NoColor: true}); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	for _, want := range []string{"=== Analysis ===", "Samples processed: 2", "CER: 0.1000 (±0.0500)", "TTFT - P50: 0.250"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in summary:\n%s", want, out.String())
		}
	}

	out.Reset()
	empty := runner.STTReport{Summary: runner.STTSummary{Failed: 3}}
	if err := WriteSummary(&out, Results{STT: &empty}, SummaryOptions{NoColor: true}); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	if !strings.Contains(out.String(), "No successful results! (3 failed)") {
		t.Fatalf("unexpected empty summary: %s", out.String())
	}
}

// TestRunPageEscapesContent verifies report HTML includes run data and escapes it.
func TestRunPageEscapesContent(t *testing.T) {
	report := sampleOCRReport()
	run := Run{
		Manifest: runner.RunManifest{
			RunID:     "run-1",
			Benchmark: "ocrbench",
			Model:     "m",
			Repo:      &runner.RepoMetadata{Commit: "0123456789abcdef0123", Branch: "main", Dirty: true},
		},
		Results: Results{Kind: dataset.KindOCR, OCR: &report},
	}
	var out bytes.Buffer
	if err := RenderRunHTML(context.Background(), &out, run); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := out.String()
	for _, token := range []string{"ocrbench / run-1", "<table", "0123456789ab (main), uncommitted changes", "Read &lt;this&gt;", "oracle error (500): boom", `class="failed"`} {
		if !strings.Contains(html, token) {
			t.Fatalf("expected report to include %s", token)
		}
	}
	if strings.Contains(html, "<this>") {
		t.Fatalf("expected question text to be escaped")
	}
}

func TestRunsTableLinksRuns(t *testing.T) {
	runs := []Run{{Manifest: runner.RunManifest{RunID: "run-2", Benchmark: "stt"}, Results: Results{STT: &runner.STTReport{}}}}
	var out bytes.Buffer
	if err := RunsTable(runs).Render(context.Background(), &out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.String(), `href="/runs/stt/run-2/"`) {
		t.Fatalf("expected run link in index:\n%s", out.String())
	}

	out.Reset()
	if err := RunsTable(nil).Render(context.Background(), &out); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if !strings.Contains(out.String(), "No runs yet.") {
		t.Fatalf("expected empty index message")
	}
}

func TestParseResultsTreatsMissingSuccessFlagAsSuccess(t *testing.T) {
	legacy := `{"detailed_results": [{"sample_id": "a", "cer": 0.1, "wer": 0.2, "ttft_seconds": 0.1, "end_to_end_seconds": 0.4}]}`
	results, err := ParseResults([]byte(legacy))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if results.STT.Summary.Samples != 1 || results.STT.Summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", results.STT.Summary)
	}
}

func TestRunPageRendersSTTRuns(t *testing.T) {
	stt := runner.STTReport{
		Summary: runner.STTSummary{Samples: 2, Failed: 1, CERMean: 0.25},
		Results: []runner.STTSampleResult{
			{SampleID: "a", ReferenceText: "fish & chips", PredictedText: "fish and chips", CER: 0.25, APISuccess: true},
			{SampleID: "b", ReferenceText: "hello", APISuccess: false, Error: "timeout"},
		},
	}
	run := Run{Manifest: runner.RunManifest{RunID: "run-3", Benchmark: "stt"}, Results: Results{Kind: dataset.KindSTT, STT: &stt}}
	var out bytes.Buffer
	if err := RunPage(run).Render(context.Background(), &out); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := out.String()
	for _, token := range []string{"<h2>Summary</h2>", "0.2500 ± 0.0000", "fish &amp; chips", `<tr class="failed"><td>b</td>`, "<td>timeout</td>"} {
		if !strings.Contains(html, token) {
			t.Fatalf("expected report to include %s:\n%s", token, html)
		}
	}
	if strings.Contains(html, "<h2>Statistics</h2>") {
		t.Fatalf("stt report should not render ocr statistics")
	}
}
