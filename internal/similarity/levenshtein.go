package similarity

// Distance returns the Levenshtein edit distance between two sequences.
// It keeps a single DP row sized by the shorter input.
func Distance[T comparable](a, b []T) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	row := make([]int, len(a)+1)
	for i := range row {
		row[i] = i
	}
	for j, cb := range b {
		diag := row[0]
		row[0] = j + 1
		for i, ca := range a {
			above := row[i+1]
			if ca == cb {
				row[i+1] = diag
			} else {
				row[i+1] = 1 + min(diag, above, row[i])
			}
			diag = above
		}
	}
	return row[len(a)]
}

// Levenshtein returns the edit distance between two strings over code points.
func Levenshtein(a, b string) int {
	return Distance([]rune(a), []rune(b))
}
