// Package metrics implements the text and structure scoring functions used to
// grade model output against reference answers.
package metrics

import "strings"

// Normalize lower-cases text, folds newlines into spaces, and trims it.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimSpace(text)
}

// tokenSet splits lower-cased text on whitespace into a set of tokens.
func tokenSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		set[field] = struct{}{}
	}
	return set
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	count := 0
	for key := range a {
		if _, ok := b[key]; ok {
			count++
		}
	}
	return count
}

// guard runs fn and maps a panic to a zero score.
func guard(fn func() float64) (score float64) {
	defer func() {
		if recover() != nil {
			score = 0
		}
	}()
	return fn()
}
