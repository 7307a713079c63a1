package eval

import "omnibench/internal/metrics"

// EvaluateSample scores a sample with the metrics its task type calls for.
func EvaluateSample(sample Sample) ScoreRecord {
	var scores ScoreRecord
	if len(sample.Answers) == 0 {
		return scores
	}
	families := Classify(sample.Type)
	first := sample.Answers[0]

	scores.TextMatch = score(func() float64 {
		if metrics.TextMatch(sample.Predict, sample.Answers) {
			return 1
		}
		return 0
	})

	if families.Has(FamilyVQA) {
		scores.VQAANLS = score(func() float64 { return metrics.VQAScore(sample.Predict, sample.Answers) })
	}

	if families.Has(FamilyOCR) && first != "" {
		scores.BLEU = score(func() float64 { return metrics.BLEU(sample.Predict, first) })
		scores.FMeasure = score(func() float64 { return metrics.FMeasure(sample.Predict, first) })
	}

	if first != "" {
		scores.AvgANLS = score(func() float64 { return metrics.ANLS(sample.Predict, first) })
	}

	if families.Has(FamilyTable) {
		if reference := tableReference(sample); reference != "" {
			scores.TEDS = score(func() float64 { return metrics.TEDS(sample.Predict, reference) })
		}
	}

	// Positioning tasks reuse the text match result until box-level ground
	// truth is scored with similarity.IoU.
	if families.Has(FamilyPositioning) || sample.hasBoxes() {
		scores.IoU = scores.TextMatch
	}
	return scores
}

// tableReference prefers the structured content over the first answer.
func tableReference(sample Sample) string {
	if sample.Content != "" {
		return sample.Content
	}
	return sample.Answers[0]
}

// score isolates a metric so a panic zeroes only that field.
func score(fn func() float64) (value float64) {
	defer func() {
		if recover() != nil {
			value = 0
		}
	}()
	return fn()
}
