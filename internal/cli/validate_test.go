package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"omnibench/internal/config"
)

func TestValidateScaffoldedConfig(t *testing.T) {
	dir := t.TempDir()
	if _, err := config.Scaffold(dir, ""); err != nil {
		t.Fatalf("scaffold: %v", err)
	}

	code, stdout, stderr := runCLI(t, "validate", "--config", config.ConfigPath(dir), "--datasets")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, stderr)
	}
	for _, want := range []string{"Config OK", "Dataset ocr_sample: 1 records OK", "Dataset stt_sample: 1 records OK"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestValidateReportsConfigIssues(t *testing.T) {
	dir := t.TempDir()
	path := config.ConfigPath(dir)
	writeTestFile(t, path, "version: 2\noutput_dir: results\n")

	code, _, stderr := runCLI(t, "validate", "--config", path)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(stderr, "Validation failed") || !strings.Contains(stderr, "version") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestValidateReportsInvalidRecords(t *testing.T) {
	proj := newTestProject(t, "http://127.0.0.1:1")
	writeTestFile(t, filepath.Join(proj.root, "data", "stt.jsonl"), `{"id": "a", "text": "no audio"}`+"\n")

	code, stdout, stderr := runCLI(t, "validate", "--config", proj.configPath, "--datasets")
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(stdout, "Dataset ocr: 3 records OK") {
		t.Fatalf("expected ocr dataset to pass:\n%s", stdout)
	}
	if !strings.Contains(stderr, "Dataset stt: invalid records among 1") || !strings.Contains(stderr, "record 1:") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestValidateRejectsPositionalArgs(t *testing.T) {
	code, _, stderr := runCLI(t, "validate", "extra")
	if code != ExitUsage || !strings.Contains(stderr, "unexpected arguments: extra") {
		t.Fatalf("unexpected result (%d): %s", code, stderr)
	}
}
