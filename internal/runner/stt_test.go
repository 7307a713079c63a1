package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnibench/internal/dataset"
	"omnibench/internal/oracle"
)

func TestRunSTT(t *testing.T) {
	samples := []dataset.Record{
		{ID: "s1", Text: "안녕하세요", Audio: &dataset.Media{Data: []byte("RIFF1"), MIME: "audio/wav"}},
		{ID: "s2", Text: "감사합니다 여러분", Audio: &dataset.Media{Data: []byte("RIFF2"), MIME: "audio/wav"}},
		{Text: "broken", Audio: &dataset.Media{Data: []byte("RIFF3"), MIME: "audio/wav"}},
	}
	model := oracle.Func(func(_ context.Context, req oracle.Request) (oracle.Response, error) {
		if !assert.Len(t, req.Media, 1) {
			return oracle.Response{}, errors.New("unexpected media")
		}
		assert.Equal(t, oracle.MediaAudio, req.Media[0].Kind)
		assert.Equal(t, "wav", req.Media[0].Format)
		assert.Equal(t, DefaultSTTMaxTokens, req.MaxTokens)
		switch string(req.Media[0].Data) {
		case "RIFF1":
			return oracle.Response{Text: " 안녕하세요\n", TTFT: time.Second, EndToEnd: 2 * time.Second}, nil
		case "RIFF2":
			return oracle.Response{Text: "감사합니다 여러분들", TTFT: 3 * time.Second, EndToEnd: 4 * time.Second}, nil
		}
		return oracle.Response{}, errors.New("throttled")
	})
	metrics := NewMetrics("ko-stt")
	report := RunSTT(context.Background(), STTRunConfig{Benchmark: "ko-stt", Workers: 1, Metrics: metrics}, samples, model, nil)

	require.Len(t, report.Results, 3)
	results := map[string]STTSampleResult{}
	for _, result := range report.Results {
		results[result.SampleID] = result
	}
	exact := results["s1"]
	assert.True(t, exact.APISuccess)
	assert.Equal(t, "안녕하세요", exact.PredictedText)
	assert.Zero(t, exact.CER)
	assert.Zero(t, exact.WER)

	partial := results["s2"]
	assert.InDelta(t, 1.0/9.0, partial.CER, 1e-9)
	assert.InDelta(t, 0.5, partial.WER, 1e-9)

	failed := results["unknown"]
	assert.False(t, failed.APISuccess)
	assert.Equal(t, "throttled", failed.Error)

	assert.Equal(t, 2, report.Summary.Samples)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.InDelta(t, 1.0/18.0, report.Summary.CERMean, 1e-9)
	assert.InDelta(t, 3.0, report.Summary.E2EP50, 1e-9)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.calls.WithLabelValues("ko-stt", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.calls.WithLabelValues("ko-stt", "failure")))
}

func TestRunSTTUsesDefaultPrompt(t *testing.T) {
	var got string
	model := oracle.Func(func(_ context.Context, req oracle.Request) (oracle.Response, error) {
		got = req.Instruction
		return oracle.Response{Text: "x"}, nil
	})
	samples := []dataset.Record{{ID: "1", Text: "x", Audio: &dataset.Media{Data: []byte("a")}}}
	RunSTT(context.Background(), STTRunConfig{}, samples, model, nil)
	assert.Equal(t, DefaultSTTPrompt, got)
}

func TestProgressObserverOutput(t *testing.T) {
	var buf bytes.Buffer
	progress := NewProgressObserver(&buf)
	model := oracle.Func(func(_ context.Context, req oracle.Request) (oracle.Response, error) {
		if string(req.Media[0].Data) == "bad" {
			return oracle.Response{}, errors.New("nope")
		}
		return oracle.Response{Text: "ok", EndToEnd: 1500 * time.Millisecond}, nil
	})
	samples := []dataset.Record{
		{ID: "good", Text: "ok", Audio: &dataset.Media{Data: []byte("good")}},
		{ID: "bad", Text: "ok", Audio: &dataset.Media{Data: []byte("bad")}},
	}
	RunSTT(context.Background(), STTRunConfig{RunID: "run-9", Workers: 1}, samples, model, progress)

	out := buf.String()
	assert.Contains(t, out, "Processing 2 samples with 1 workers (run run-9)")
	assert.Contains(t, out, "ok good 1.500s")
	assert.Contains(t, out, "failed bad: nope")
	assert.Contains(t, out, "Finished 2 samples: 1 succeeded, 1 failed")
	assert.Equal(t, 4, strings.Count(out, "\n"))
}
