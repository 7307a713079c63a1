package runner

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"omnibench/internal/dataset"
	"omnibench/internal/metrics"
	"omnibench/internal/oracle"
)

const (
	// DefaultSTTPrompt asks for a bare Korean transcription.
	DefaultSTTPrompt = "Please transcribe the Korean speech to text. Perform speech-to-text (STT) conversion and provide only the transcribed text without any additional commentary or formatting."
	// DefaultSTTMaxTokens is the output budget for transcription calls.
	DefaultSTTMaxTokens = 1024
)

// STTRunConfig configures a speech-to-text benchmark run.
type STTRunConfig struct {
	RunID     string
	Benchmark string
	// Model labels observer events.
	Model       string
	BaseDir     string
	Workers     int
	Prompt      string
	MaxTokens   int
	Temperature *float64
	Logger      *zap.Logger
	Metrics     *Metrics
	Now         func() time.Time
}

func (c STTRunConfig) withDefaults() STTRunConfig {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if strings.TrimSpace(c.Prompt) == "" {
		c.Prompt = DefaultSTTPrompt
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultSTTMaxTokens
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// RunSTT transcribes every sample through the worker pool and scores the
// transcripts with CER and WER. Failed samples stay in the detailed results
// and are excluded from the summary.
func RunSTT(ctx context.Context, cfg STTRunConfig, samples []dataset.Record, model oracle.Oracle, observer RunObserver) STTReport {
	cfg = cfg.withDefaults()
	emit := emitter{observer: observer, benchmark: cfg.Benchmark, now: cfg.Now}
	startedAt := cfg.Now()
	if observer != nil {
		observer.OnRunStart(RunInfo{RunID: cfg.RunID, Benchmark: cfg.Benchmark, Kind: string(dataset.KindSTT), Model: cfg.Model, Total: len(samples), Workers: cfg.Workers, StartedAt: startedAt})
		for index, sample := range samples {
			emit.emit(SampleEvent{Index: index, SampleID: sampleID(sample), Type: SampleQueued})
		}
	}

	results := runPool(ctx, cfg.Workers, len(samples), func(ctx context.Context, index int) STTSampleResult {
		sample := samples[index]
		emit.emit(SampleEvent{Index: index, SampleID: sampleID(sample), Type: SampleRunning})
		result := processSTTSample(ctx, cfg, sample, model)
		event := SampleEvent{
			Index:    index,
			SampleID: result.SampleID,
			Score:    result.CER,
			TTFT:     seconds(result.TTFT),
			EndToEnd: seconds(result.EndToEnd),
			Error:    result.Error,
			Type:     SampleSucceeded,
		}
		if !result.APISuccess {
			event.Type = SampleFailed
		}
		emit.emit(event)
		return result
	})

	report := STTReport{Summary: AggregateSTT(results), Results: results}
	if observer != nil {
		observer.OnRunEnd(RunEnd{
			RunID:     cfg.RunID,
			Benchmark: cfg.Benchmark,
			Total:     len(results),
			Succeeded: report.Summary.Samples,
			Failed:    report.Summary.Failed,
			Duration:  cfg.Now().Sub(startedAt),
		})
	}
	return report
}

func processSTTSample(ctx context.Context, cfg STTRunConfig, sample dataset.Record, model oracle.Oracle) STTSampleResult {
	result := STTSampleResult{SampleID: sampleID(sample), ReferenceText: sample.Text}
	start := cfg.Now()
	fail := func(err error) STTSampleResult {
		cfg.Metrics.observeCall(false, 0, 0)
		cfg.Logger.Debug("stt sample failed", zap.String("id", result.SampleID), zap.Error(err))
		result.Error = err.Error()
		result.EndToEnd = cfg.Now().Sub(start).Seconds()
		return result
	}

	audio, format, err := sample.Audio.Load(cfg.BaseDir)
	if err != nil {
		return fail(err)
	}
	resp, err := model.Call(ctx, oracle.Request{
		Instruction: cfg.Prompt,
		Media:       []oracle.Media{{Kind: oracle.MediaAudio, Format: format, Data: audio}},
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return fail(err)
	}
	cfg.Metrics.observeCall(true, resp.TTFT, resp.EndToEnd)
	result.APISuccess = true
	result.PredictedText = strings.TrimSpace(resp.Text)
	result.CER = metrics.CER(sample.Text, result.PredictedText)
	result.WER = metrics.WER(sample.Text, result.PredictedText)
	result.TTFT = resp.TTFT.Seconds()
	result.EndToEnd = resp.EndToEnd.Seconds()
	cfg.Metrics.observeScore("cer", result.CER)
	cfg.Metrics.observeScore("wer", result.WER)
	return result
}

func sampleID(sample dataset.Record) string {
	if sample.ID == "" {
		return "unknown"
	}
	return sample.ID
}
