package spec

import (
	"strings"
	"testing"
)

func TestParseConfigValid(t *testing.T) {
	data := []byte(`version: 1
output_dir: "./results"
oracle:
  provider: openai
  model: gpt-4o-mini
  temperature: 0
benchmarks:
  - id: ocrbench
    type: ocr
    dataset: data/ocrbench.jsonl
    workers: 15
    limit: 100
    task_filter: "text recognition"
default_benchmark: ocrbench
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if cfg.Oracle.Temperature == nil || *cfg.Oracle.Temperature != 0 {
		t.Fatalf("expected explicit zero temperature, got %v", cfg.Oracle.Temperature)
	}
	benchmark, ok := cfg.Benchmark("ocrbench")
	if !ok || benchmark.Limit != 100 || benchmark.TaskFilter != "text recognition" {
		t.Fatalf("unexpected benchmark: %+v", benchmark)
	}
	if _, ok := cfg.Benchmark("missing"); ok {
		t.Fatalf("expected missing benchmark lookup to fail")
	}
}

func TestParseConfigUnknownField(t *testing.T) {
	data := []byte(`version: 1
output_dir: "./out"
unknown: true
`)
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for unknown field")
	}
}

func TestParseConfigRejectsMultipleDocs(t *testing.T) {
	data := []byte("version: 1\n---\nversion: 1\n")
	_, err := ParseConfig(data)
	if err == nil || !strings.Contains(err.Error(), "only one YAML document") {
		t.Fatalf("expected parse error for multiple documents, got %v", err)
	}
}

func TestParseConfigRejectsEmptyDocument(t *testing.T) {
	for _, data := range []string{"", "  \n", "# just a comment\n"} {
		_, err := ParseConfig([]byte(data))
		if err == nil || !strings.Contains(err.Error(), "document is empty") {
			t.Fatalf("expected empty document error for %q, got %v", data, err)
		}
	}
}
