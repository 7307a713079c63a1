package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"omnibench/internal/report"
)

func TestScoreCommandScoresPredictions(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "preds.jsonl")
	writeTestFile(t, input, strings.Join([]string{
		`{"id": 1, "type": "text recognition en", "question": "q", "answers": ["Omni"], "predict": "omni bench"}`,
		`{"id": 2, "type": "text recognition en", "question": "q", "answers": ["bench"], "predict": "nope"}`,
		`{"id": 3, "type": "doc parsing en", "question": "q", "answers": ["x"], "predict": "x"}`,
	}, "\n")+"\n")

	code, stdout, stderr := runCLI(t, "score", "--input", input, "--task-filter", "recognition")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, stderr)
	}
	for _, want := range []string{"=== preds ===", "Total samples: 2", "API Success: 2", "Text Correct: 1", "Text Accuracy: 50.0%"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if !strings.Contains(stdout, "Average E2E") {
		t.Fatalf("expected latency lines for successful samples:\n%s", stdout)
	}

	results, err := report.LoadResults(filepath.Join(dir, "preds.results.json"))
	if err != nil {
		t.Fatalf("load results: %v", err)
	}
	if got := results.OCR.Results[0].DatasetName; got != "preds" {
		t.Fatalf("expected dataset name from file name, got %q", got)
	}
}

func TestScoreCommandRequiresInput(t *testing.T) {
	code, _, stderr := runCLI(t, "score")
	if code != ExitUsage || !strings.Contains(stderr, "Missing --input") {
		t.Fatalf("unexpected result (%d): %s", code, stderr)
	}
}

func TestScoreCommandRejectsUnknownFormat(t *testing.T) {
	input := filepath.Join(t.TempDir(), "preds.csv")
	writeTestFile(t, input, "id,predict\n")
	code, _, stderr := runCLI(t, "score", "--input", input)
	if code != ExitError || !strings.Contains(stderr, "unsupported dataset format") {
		t.Fatalf("unexpected result (%d): %s", code, stderr)
	}
}
