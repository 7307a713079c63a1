package metrics

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"omnibench/internal/similarity"
)

// CER returns the character error rate of hypothesis against reference.
func CER(reference, hypothesis string) float64 {
	ref := []rune(transcriptText(reference))
	hyp := []rune(transcriptText(hypothesis))
	return errorRate(similarity.Distance(ref, hyp), len(ref), len(hyp))
}

// WER returns the word error rate of hypothesis against reference.
func WER(reference, hypothesis string) float64 {
	ref := strings.Fields(transcriptText(reference))
	hyp := strings.Fields(transcriptText(hypothesis))
	return errorRate(similarity.Distance(ref, hyp), len(ref), len(hyp))
}

// transcriptText composes Unicode (so decomposed Hangul matches precomposed
// syllables) and trims surrounding whitespace.
func transcriptText(text string) string {
	return strings.TrimSpace(norm.NFC.String(text))
}

func errorRate(distance, refLen, hypLen int) float64 {
	if refLen == 0 {
		if hypLen == 0 {
			return 0
		}
		return 1
	}
	return float64(distance) / float64(refLen)
}
