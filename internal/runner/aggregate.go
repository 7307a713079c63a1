package runner

import "omnibench/internal/stats"

// AggregateOCR summarizes OCR results. Rates are percentages of all samples;
// score means and latencies cover successful calls only. A run with no
// successful call reports zero rates and latencies and N/A means.
func AggregateOCR(results []OCRSampleResult) OCRStatistics {
	out := OCRStatistics{TotalSamples: len(results)}
	var (
		teds, iou, vqa, bleu, fm, anls []float64
		ttft, e2e                      []float64
	)
	for _, result := range results {
		if !result.APISuccess {
			out.APIFailed++
			continue
		}
		out.APISuccess++
		if result.TextMatch {
			out.TextCorrect++
		}
		teds = append(teds, result.TEDSScore)
		iou = append(iou, result.IoUScore)
		vqa = append(vqa, result.VQAANLS)
		bleu = append(bleu, result.BLEUScore)
		fm = append(fm, result.FMeasure)
		anls = append(anls, result.AvgANLS)
		ttft = append(ttft, result.TTFT)
		e2e = append(e2e, result.EndToEnd)
	}
	out.AvgTEDS = stats.PositiveMean(teds)
	out.AvgIoU = stats.PositiveMean(iou)
	out.AvgVQAANLS = stats.PositiveMean(vqa)
	out.AvgBLEU = stats.PositiveMean(bleu)
	out.AvgFMeasure = stats.PositiveMean(fm)
	out.AvgANLS = stats.PositiveMean(anls)
	if out.APISuccess == 0 {
		return out
	}
	out.APISuccessRate = stats.Percent(out.APISuccess, out.TotalSamples)
	out.TextAccuracy = stats.Percent(out.TextCorrect, out.TotalSamples)
	out.AvgTTFT = stats.Mean(ttft)
	out.AvgE2E = stats.Mean(e2e)
	out.P50E2E = stats.NearestRank(e2e, 0.5)
	out.P95E2E = stats.NearestRank(e2e, 0.95)
	out.P99E2E = stats.NearestRank(e2e, 0.99)
	return out
}

// AggregateSTT summarizes successful STT samples with population standard
// deviations and interpolated latency percentiles.
func AggregateSTT(results []STTSampleResult) STTSummary {
	var cer, wer, ttft, e2e []float64
	failed := 0
	for _, result := range results {
		if !result.APISuccess {
			failed++
			continue
		}
		cer = append(cer, result.CER)
		wer = append(wer, result.WER)
		ttft = append(ttft, result.TTFT)
		e2e = append(e2e, result.EndToEnd)
	}
	return STTSummary{
		Samples: len(cer),
		Failed:  failed,
		CERMean: stats.Mean(cer),
		CERStd:  stats.StdDev(cer),
		WERMean: stats.Mean(wer),
		WERStd:  stats.StdDev(wer),
		TTFTP50: stats.Interpolated(ttft, 0.50),
		TTFTP95: stats.Interpolated(ttft, 0.95),
		TTFTP99: stats.Interpolated(ttft, 0.99),
		E2EP50:  stats.Interpolated(e2e, 0.50),
		E2EP95:  stats.Interpolated(e2e, 0.95),
		E2EP99:  stats.Interpolated(e2e, 0.99),
	}
}
