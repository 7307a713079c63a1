package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCER verifies character error rates.
func TestCER(t *testing.T) {
	assert.Equal(t, 0.0, CER("안녕하세요", "안녕하세요"))
	assert.InDelta(t, 1.0/5.0, CER("안녕하세요", "안녕하세오"), 1e-9)
	assert.Equal(t, 0.0, CER("", ""))
	assert.Equal(t, 1.0, CER("", "extra"))
}

// TestCERComposesHangul verifies decomposed jamo match precomposed syllables.
func TestCERComposesHangul(t *testing.T) {
	decomposed := "\u1100\u1161"
	assert.Equal(t, 0.0, CER("\uAC00", decomposed))
}

// TestWER verifies word error rates.
func TestWER(t *testing.T) {
	assert.Equal(t, 0.0, WER("the cat sat", " the  cat sat "))
	assert.InDelta(t, 1.0/3.0, WER("the cat sat", "the dog sat"), 1e-9)
	assert.InDelta(t, 2.0/3.0, WER("the cat sat", "the"), 1e-9)
}
