package runner

import (
	"omnibench/internal/stats"
)

// OCRSampleResult is one scored OCR sample as written to results.json.
type OCRSampleResult struct {
	DatasetName string   `json:"dataset_name"`
	Type        string   `json:"type"`
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Answers     []string `json:"answers"`
	Predict     string   `json:"predict"`
	APISuccess  bool     `json:"api_success"`
	TextMatch   bool     `json:"text_match"`
	TEDSScore   float64  `json:"teds_score"`
	IoUScore    float64  `json:"iou_score"`
	VQAANLS     float64  `json:"vqa_anls"`
	BLEUScore   float64  `json:"bleu_score"`
	FMeasure    float64  `json:"f_measure"`
	AvgANLS     float64  `json:"avg_anls"`
	Error       string   `json:"error"`
	TTFT        float64  `json:"ttft"`
	EndToEnd    float64  `json:"end_to_end"`
}

// OCRStatistics aggregates a set of OCR results. Score means are taken over
// strictly positive values and are N/A when none exist.
type OCRStatistics struct {
	TotalSamples   int         `json:"total_samples"`
	APISuccess     int         `json:"api_success"`
	APIFailed      int         `json:"api_failed"`
	TextCorrect    int         `json:"text_correct"`
	APISuccessRate float64     `json:"api_success_rate"`
	TextAccuracy   float64     `json:"text_accuracy"`
	AvgTEDS        stats.Value `json:"avg_teds"`
	AvgIoU         stats.Value `json:"avg_iou"`
	AvgVQAANLS     stats.Value `json:"avg_vqa_anls"`
	AvgBLEU        stats.Value `json:"avg_bleu"`
	AvgFMeasure    stats.Value `json:"avg_f_measure"`
	AvgANLS        stats.Value `json:"avg_anls"`
	AvgTTFT        float64     `json:"avg_ttft"`
	AvgE2E         float64     `json:"avg_e2e"`
	P50E2E         float64     `json:"p50_e2e"`
	P95E2E         float64     `json:"p95_e2e"`
	P99E2E         float64     `json:"p99_e2e"`
}

// OCRReport is the results.json payload of an OCR run.
type OCRReport struct {
	Results    []OCRSampleResult `json:"results"`
	Statistics OCRStatistics     `json:"statistics"`
}

// STTSampleResult is one transcribed sample.
type STTSampleResult struct {
	SampleID      string  `json:"sample_id"`
	ReferenceText string  `json:"reference_text"`
	PredictedText string  `json:"predicted_text"`
	CER           float64 `json:"cer"`
	WER           float64 `json:"wer"`
	TTFT          float64 `json:"ttft_seconds"`
	EndToEnd      float64 `json:"end_to_end_seconds"`
	APISuccess    bool    `json:"api_success"`
	Error         string  `json:"error,omitempty"`
}

// STTSummary aggregates successful STT samples.
type STTSummary struct {
	Samples int     `json:"samples"`
	Failed  int     `json:"failed"`
	CERMean float64 `json:"cer_mean"`
	CERStd  float64 `json:"cer_std"`
	WERMean float64 `json:"wer_mean"`
	WERStd  float64 `json:"wer_std"`
	TTFTP50 float64 `json:"ttft_p50"`
	TTFTP95 float64 `json:"ttft_p95"`
	TTFTP99 float64 `json:"ttft_p99"`
	E2EP50  float64 `json:"e2e_p50"`
	E2EP95  float64 `json:"e2e_p95"`
	E2EP99  float64 `json:"e2e_p99"`
}

// STTReport is the results.json payload of an STT run.
type STTReport struct {
	Summary STTSummary        `json:"summary"`
	Results []STTSampleResult `json:"detailed_results"`
}
