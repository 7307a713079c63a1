package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"omnibench/internal/testutil"
)

const (
	testPNG    = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="
	testWAV    = "data:audio/wav;base64,UklGRiQAAABXQVZFZm10IBAAAAABAAEAQB8AAIA+AAACABAAZGF0YQAAAAA="
	testKeyEnv = "OMNIBENCH_TEST_KEY"
)

const testConfig = `version: 1
output_dir: results
warehouse: warehouse.duckdb
log_level: error
oracle:
  provider: openai
  base_url: %q
  model: test-model
  api_key_env: ` + testKeyEnv + `
benchmarks:
  - id: ocr
    type: ocr
    dataset: data/ocr.jsonl
    workers: 2
  - id: stt
    type: stt
    dataset: data/stt.jsonl
    workers: 2
default_benchmark: ocr
`

// testProject is a temporary project with an OCR and an STT benchmark.
type testProject struct {
	root       string
	configPath string
}

func newTestProject(t *testing.T, baseURL string) testProject {
	t.Helper()
	root := t.TempDir()
	configPath := filepath.Join(root, ".omnibench", "config.yml")
	writeTestFile(t, configPath, fmt.Sprintf(testConfig, baseURL))
	writeTestFile(t, filepath.Join(root, "data", "ocr.jsonl"), strings.Join([]string{
		`{"id": 1, "type": "text recognition en", "question": "read-hello", "answers": ["hello"], "image": "` + testPNG + `"}`,
		`{"id": 2, "type": "text recognition en", "question": "read-world", "answers": ["world"], "image": "` + testPNG + `"}`,
		`{"id": 3, "type": "key information extraction en", "question": "read-broken", "answers": ["x"], "image": "` + testPNG + `"}`,
	}, "\n")+"\n")
	writeTestFile(t, filepath.Join(root, "data", "stt.jsonl"), strings.Join([]string{
		`{"id": "a", "audio": "` + testWAV + `", "text": "안녕하세요"}`,
		`{"id": "b", "audio": "` + testWAV + `", "text": "감사합니다"}`,
	}, "\n")+"\n")
	t.Setenv(testKeyEnv, "test-key")
	return testProject{root: root, configPath: configPath}
}

// ocrOracle answers read-hello correctly, read-world wrongly, and fails
// read-broken.
func ocrOracle(t *testing.T) *testutil.OracleServer {
	t.Helper()
	return testutil.StartOracle(t, func(req testutil.OracleRequest) testutil.OracleReply {
		switch {
		case strings.Contains(req.Text, "read-hello"):
			return testutil.OracleReply{Chunks: []string{"hel", "lo"}}
		case strings.Contains(req.Text, "read-world"):
			return testutil.OracleReply{Chunks: []string{"nothing"}}
		case strings.Contains(req.Text, "read-broken"):
			return testutil.OracleReply{Status: 500, Body: "upstream exploded"}
		default:
			return testutil.OracleReply{Chunks: []string{"안녕하세요"}}
		}
	})
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// onlyRunDir returns the single run directory of a benchmark.
func onlyRunDir(t *testing.T, root, benchmark string) string {
	t.Helper()
	dir := filepath.Join(root, "results", benchmark)
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one run in %s, got %d", dir, len(entries))
	}
	return filepath.Join(dir, entries[0].Name())
}
