package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnibench/internal/stats"
)

func TestWriteRunOutputs(t *testing.T) {
	root := t.TempDir()
	paths, err := NewOutputPaths(root, "ocrbench", "run-1")
	require.NoError(t, err)
	report := OCRReport{
		Results:    []OCRSampleResult{{ID: "1", Question: "<b>?</b>", Answers: []string{"a"}, APISuccess: true}},
		Statistics: AggregateOCR(nil),
	}
	metrics := NewMetrics("ocrbench")
	metrics.observeCall(true, time.Second, 2*time.Second)
	started := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	err = WriteRunOutputs(paths, RunOutputs{
		Manifest: RunManifest{RunID: "run-1", Benchmark: "ocrbench", Kind: "ocr", StartedAt: started, FinishedAt: started.Add(time.Minute)},
		Payload:  report,
		Metrics:  metrics,
		Report: func(w io.Writer) error {
			_, err := fmt.Fprint(w, "<html>report</html>")
			return err
		},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(paths.ResultsPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"results\": [", "two-space indentation")
	assert.Contains(t, string(data), `"question": "<b>?</b>"`, "html left unescaped")
	var decoded OCRReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, stats.Value{}, decoded.Statistics.AvgTEDS)

	manifest, err := ReadManifest(paths.ManifestPath())
	require.NoError(t, err)
	assert.Equal(t, paths.ResultsPath(), manifest.ResultsPath)
	assert.True(t, manifest.FinishedAt.Equal(started.Add(time.Minute)))

	html, err := os.ReadFile(paths.ReportPath())
	require.NoError(t, err)
	assert.Equal(t, "<html>report</html>", string(html))
	prom, err := os.ReadFile(paths.MetricsPath())
	require.NoError(t, err)
	assert.Contains(t, string(prom), `omnibench_oracle_calls_total{benchmark="ocrbench",outcome="success"} 1`)
}

func TestWriteRunOutputsResultsOverride(t *testing.T) {
	root := t.TempDir()
	paths, err := NewOutputPaths(filepath.Join(root, "runs"), "stt", "run-2")
	require.NoError(t, err)
	paths.ResultsFile = filepath.Join(root, "benchmark", "stt_results.json")
	require.NoError(t, WriteRunOutputs(paths, RunOutputs{Payload: STTReport{}}))

	assert.FileExists(t, paths.ResultsFile)
	assert.NoFileExists(t, paths.ReportPath(), "no renderer, no report")
}
