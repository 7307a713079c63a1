package metrics

import (
	"strings"

	"omnibench/internal/similarity"
)

// anlsShortAnswerWords is the word count below which ANLS uses containment.
const anlsShortAnswerWords = 5

// vqaAcceptThreshold is the minimum ANLS counted by VQAScore.
const vqaAcceptThreshold = 0.5

// TextMatch reports whether any answer contains the prediction or is
// contained in it, after normalization.
func TextMatch(prediction string, answers []string) bool {
	pred := Normalize(prediction)
	for _, answer := range answers {
		ans := Normalize(answer)
		if strings.Contains(pred, ans) || strings.Contains(ans, pred) {
			return true
		}
	}
	return false
}

// ANLS returns the normalized Levenshtein similarity between prediction and
// answer. Answers shorter than five words are scored by containment.
func ANLS(prediction, answer string) float64 {
	return guard(func() float64 {
		pred := Normalize(prediction)
		ans := Normalize(answer)
		if len(strings.Fields(ans)) < anlsShortAnswerWords {
			if strings.Contains(pred, ans) {
				return 1
			}
			return 0
		}
		predRunes := []rune(pred)
		ansRunes := []rune(ans)
		length := max(len(predRunes), len(ansRunes))
		if length == 0 {
			return 0
		}
		dist := similarity.Distance(predRunes, ansRunes)
		return max(0, 1-float64(dist)/float64(length))
	})
}

// VQAScore returns the best ANLS across answers, ignoring scores under 0.5.
func VQAScore(prediction string, answers []string) float64 {
	best := 0.0
	for _, answer := range answers {
		score := ANLS(prediction, answer)
		if score >= vqaAcceptThreshold && score > best {
			best = score
		}
	}
	return best
}

// BLEU approximates BLEU as unique-unigram precision of the prediction.
func BLEU(prediction, reference string) float64 {
	return guard(func() float64 {
		pred := tokenSet(prediction)
		ref := tokenSet(reference)
		if len(pred) == 0 || len(ref) == 0 {
			return 0
		}
		return float64(intersectionSize(pred, ref)) / float64(len(pred))
	})
}

// FMeasure returns the harmonic mean of set precision and recall over
// whitespace tokens.
func FMeasure(prediction, reference string) float64 {
	return guard(func() float64 {
		pred := tokenSet(prediction)
		ref := tokenSet(reference)
		if len(pred) == 0 && len(ref) == 0 {
			return 1
		}
		if len(pred) == 0 || len(ref) == 0 {
			return 0
		}
		inter := float64(intersectionSize(pred, ref))
		precision := inter / float64(len(pred))
		recall := inter / float64(len(ref))
		if precision+recall == 0 {
			return 0
		}
		return 2 * precision * recall / (precision + recall)
	})
}
