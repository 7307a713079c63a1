package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTableTags verifies tag extraction including attributes and case.
func TestTableTags(t *testing.T) {
	html := `<TABLE border="1"><tr><td colspan="2">A</td></tr></table>`
	assert.Equal(t, []string{"table", "tr", "td", "/td", "/tr", "/table"}, TableTags(html))
	assert.Nil(t, TableTags(""))
}

// TestTEDS verifies identity, overlap, and the empty reference.
func TestTEDS(t *testing.T) {
	ref := "<table><tr><th>h</th></tr><tr><td>1</td></tr></table>"
	assert.Equal(t, 1.0, TEDS(ref, ref))
	assert.Equal(t, 1.0, TEDS("<table><tr><th>x</th></tr><tr><td>y</td></tr></table>", ref))

	// pred covers 6 of the 8 distinct reference tags.
	pred := "<table><tr><td>1</td></tr></table>"
	assert.InDelta(t, 6.0/8.0, TEDS(pred, ref), 1e-9)

	assert.Equal(t, 0.0, TEDS(pred, "plain text"))
	assert.Equal(t, 1.0, TEDS("no tags", "also none"))
}
