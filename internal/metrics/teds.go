package metrics

import (
	"regexp"
	"slices"
	"strings"
)

var tableTagPattern = regexp.MustCompile(`<(/?(?:table|tr|td|th))[^>]*>`)

// TableTags extracts the sequence of table, tr, td, and th tags (open or
// close) from HTML-like text.
func TableTags(html string) []string {
	if html == "" {
		return nil
	}
	matches := tableTagPattern.FindAllStringSubmatch(strings.ToLower(html), -1)
	tags := make([]string, 0, len(matches))
	for _, match := range matches {
		tags = append(tags, match[1])
	}
	return tags
}

// TEDS approximates tree-edit-distance similarity by the Jaccard overlap of
// the table tags in both documents. Identical tag sequences score 1.
func TEDS(predictedHTML, referenceHTML string) float64 {
	return guard(func() float64 {
		pred := TableTags(predictedHTML)
		ref := TableTags(referenceHTML)
		if slices.Equal(pred, ref) {
			return 1
		}
		refSet := toSet(ref)
		if len(refSet) == 0 {
			return 0
		}
		predSet := toSet(pred)
		inter := intersectionSize(predSet, refSet)
		union := len(predSet) + len(refSet) - inter
		if union == 0 {
			return 0
		}
		return float64(inter) / float64(union)
	})
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
