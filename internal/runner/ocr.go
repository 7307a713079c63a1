package runner

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"omnibench/internal/dataset"
	"omnibench/internal/eval"
	"omnibench/internal/oracle"
)

// DefaultOCRMaxTokens is the output budget for OCR calls.
const DefaultOCRMaxTokens = 2048

// OCRRunConfig configures an OCR benchmark run.
type OCRRunConfig struct {
	RunID     string
	Benchmark string
	// Model labels observer events.
	Model string
	// BaseDir resolves relative image paths.
	BaseDir string
	Workers int
	// Prompt, when set, is placed before each sample question.
	Prompt      string
	MaxTokens   int
	Temperature *float64
	Logger      *zap.Logger
	Metrics     *Metrics
	Now         func() time.Time
}

func (c OCRRunConfig) withDefaults() OCRRunConfig {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultOCRMaxTokens
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// RunOCR sends every sample to the oracle through a bounded worker pool,
// scores the replies, and aggregates them. Per-sample failures are recorded
// in the results and never abort the run. Results are in completion order.
func RunOCR(ctx context.Context, cfg OCRRunConfig, samples []dataset.Record, model oracle.Oracle, observer RunObserver) OCRReport {
	cfg = cfg.withDefaults()
	emit := emitter{observer: observer, benchmark: cfg.Benchmark, now: cfg.Now}
	startedAt := cfg.Now()
	if observer != nil {
		observer.OnRunStart(RunInfo{RunID: cfg.RunID, Benchmark: cfg.Benchmark, Kind: string(dataset.KindOCR), Model: cfg.Model, Total: len(samples), Workers: cfg.Workers, StartedAt: startedAt})
		for index, sample := range samples {
			emit.emit(SampleEvent{Index: index, SampleID: sample.ID, TaskType: sample.Type, Type: SampleQueued})
		}
	}

	results := runPool(ctx, cfg.Workers, len(samples), func(ctx context.Context, index int) OCRSampleResult {
		sample := samples[index]
		emit.emit(SampleEvent{Index: index, SampleID: sample.ID, TaskType: sample.Type, Type: SampleRunning})
		result := processOCRSample(ctx, cfg, sample, model)
		event := SampleEvent{
			Index:    index,
			SampleID: sample.ID,
			TaskType: sample.Type,
			Matched:  result.TextMatch,
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

	report := OCRReport{Results: results, Statistics: AggregateOCR(results)}
	if observer != nil {
		observer.OnRunEnd(RunEnd{
			RunID:     cfg.RunID,
			Benchmark: cfg.Benchmark,
			Total:     report.Statistics.TotalSamples,
			Succeeded: report.Statistics.APISuccess,
			Failed:    report.Statistics.APIFailed,
			Duration:  cfg.Now().Sub(startedAt),
		})
	}
	return report
}

func processOCRSample(ctx context.Context, cfg OCRRunConfig, sample dataset.Record, model oracle.Oracle) OCRSampleResult {
	result := newOCRResult(cfg.Benchmark, sample)
	start := cfg.Now()

	image, format, err := sample.Image.Load(cfg.BaseDir)
	if err != nil {
		return failOCR(cfg, result, err, start)
	}
	resp, err := model.Call(ctx, oracle.Request{
		Instruction: ocrInstruction(cfg.Prompt, sample.Question),
		Media:       []oracle.Media{{Kind: oracle.MediaImage, Format: format, Data: image}},
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return failOCR(cfg, result, err, start)
	}
	cfg.Metrics.observeCall(true, resp.TTFT, resp.EndToEnd)
	result.Predict = resp.Text
	result.APISuccess = true
	result.TTFT = resp.TTFT.Seconds()
	result.EndToEnd = resp.EndToEnd.Seconds()
	applyScores(&result, sample, cfg.Metrics)
	return result
}

// ScoreOCR evaluates records that already carry a prediction, without
// calling an oracle. Every record counts as a successful call with zero
// latency.
func ScoreOCR(benchmark string, records []dataset.Record) OCRReport {
	results := make([]OCRSampleResult, 0, len(records))
	for _, record := range records {
		result := newOCRResult(benchmark, record)
		result.Predict = record.Predict
		result.APISuccess = true
		applyScores(&result, record, nil)
		results = append(results, result)
	}
	return OCRReport{Results: results, Statistics: AggregateOCR(results)}
}

func newOCRResult(benchmark string, sample dataset.Record) OCRSampleResult {
	datasetName := sample.DatasetName
	if datasetName == "" {
		datasetName = benchmark
	}
	answers := sample.Answers
	if answers == nil {
		answers = []string{}
	}
	return OCRSampleResult{
		DatasetName: datasetName,
		Type:        sample.Type,
		ID:          sample.ID,
		Question:    sample.Question,
		Answers:     answers,
	}
}

func applyScores(result *OCRSampleResult, sample dataset.Record, metrics *Metrics) {
	scores := eval.EvaluateSample(eval.Sample{
		Predict:  result.Predict,
		Answers:  sample.Answers,
		Type:     sample.Type,
		BBox:     sample.BBox,
		BBoxList: sample.BBoxList,
		Content:  sample.Content,
	})
	result.TextMatch = scores.Matched()
	result.TEDSScore = scores.TEDS
	result.IoUScore = scores.IoU
	result.VQAANLS = scores.VQAANLS
	result.BLEUScore = scores.BLEU
	result.FMeasure = scores.FMeasure
	result.AvgANLS = scores.AvgANLS

	metrics.observeScore("text_match", scores.TextMatch)
	for name, value := range map[string]float64{
		"teds":      scores.TEDS,
		"iou":       scores.IoU,
		"vqa_anls":  scores.VQAANLS,
		"bleu":      scores.BLEU,
		"f_measure": scores.FMeasure,
		"avg_anls":  scores.AvgANLS,
	} {
		if value > 0 {
			metrics.observeScore(name, value)
		}
	}
}

func failOCR(cfg OCRRunConfig, result OCRSampleResult, err error, start time.Time) OCRSampleResult {
	cfg.Metrics.observeCall(false, 0, 0)
	cfg.Logger.Debug("ocr sample failed", zap.String("id", result.ID), zap.Error(err))
	result.APISuccess = false
	result.Error = err.Error()
	result.EndToEnd = cfg.Now().Sub(start).Seconds()
	return result
}

func ocrInstruction(prompt, question string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return question
	}
	return prompt + "\n\n" + question
}

func seconds(value float64) time.Duration {
	return time.Duration(value * float64(time.Second))
}
