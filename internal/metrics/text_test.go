package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// TestTextMatch verifies lenient containment in both directions.
func TestTextMatch(t *testing.T) {
	cases := []struct {
		name       string
		prediction string
		answers    []string
		want       bool
	}{
		{"answer in prediction", "The answer is 42.", []string{"42"}, true},
		{"prediction in answer", "Paris", []string{"Paris, France"}, true},
		{"case and space", "  HELLO\nWorld ", []string{"hello world"}, true},
		{"no match", "blue", []string{"red", "green"}, false},
		{"any answer", "green", []string{"red", "green"}, true},
		{"no answers", "anything", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TextMatch(tc.prediction, tc.answers))
		})
	}
}

// TestTextMatchDoesNotMutate verifies inputs are left untouched.
func TestTextMatchDoesNotMutate(t *testing.T) {
	answers := []string{"  MiXeD  "}
	TextMatch("Mixed", answers)
	assert.Equal(t, []string{"  MiXeD  "}, answers)
}

// TestANLS verifies the containment shortcut and the edit-distance branch.
func TestANLS(t *testing.T) {
	assert.Equal(t, 1.0, ANLS("the total is 42 dollars", "42"))
	assert.Equal(t, 0.0, ANLS("forty two", "42"))

	long := "the quick brown fox jumps over"
	assert.Equal(t, 1.0, ANLS("The Quick Brown Fox Jumps Over", long))
	assert.InDelta(t, 1-1.0/30.0, ANLS("the quick brown fox jumps ovr", long), 1e-9)
	assert.Equal(t, 0.0, ANLS("", long))
}

// TestANLSRange checks the score stays in [0, 1].
func TestANLSRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := rapid.String().Draw(rt, "prediction")
		a := rapid.String().Draw(rt, "answer")
		score := ANLS(p, a)
		if score < 0 || score > 1 {
			rt.Fatalf("ANLS(%q, %q) = %v", p, a, score)
		}
	})
}

// TestANLSIdentityLongAnswer checks identical long answers score 1.
func TestANLSIdentityLongAnswer(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		words := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,8}`), 5, 12).Draw(rt, "words")
		text := ""
		for i, word := range words {
			if i > 0 {
				text += " "
			}
			text += word
		}
		if score := ANLS(text, text); score != 1 {
			rt.Fatalf("ANLS identity = %v for %q", score, text)
		}
	})
}

// TestVQAScore verifies the acceptance threshold and maximum selection.
func TestVQAScore(t *testing.T) {
	assert.Equal(t, 1.0, VQAScore("the answer is 42", []string{"42"}))
	assert.Equal(t, 0.0, VQAScore("nothing", []string{"42", "43"}))

	ref := "alpha beta gamma delta epsilon zeta"
	far := "omega psi chi phi upsilon tau"
	assert.Equal(t, 0.0, VQAScore(far, []string{ref}))
	assert.Equal(t, 1.0, VQAScore(ref, []string{far, ref}))
}

// TestBLEU verifies unique-unigram precision.
func TestBLEU(t *testing.T) {
	assert.Equal(t, 0.0, BLEU("", "reference"))
	assert.Equal(t, 0.0, BLEU("prediction", ""))
	assert.InDelta(t, 2.0/3.0, BLEU("the cat the dog", "The cat sat"), 1e-9)
	assert.Equal(t, 1.0, BLEU("a b", "b a c"))
}

// TestFMeasure verifies set F1 and its edge cases.
func TestFMeasure(t *testing.T) {
	assert.Equal(t, 1.0, FMeasure("", ""))
	assert.Equal(t, 0.0, FMeasure("", "x"))
	assert.Equal(t, 0.0, FMeasure("x", ""))
	assert.Equal(t, 0.0, FMeasure("a b", "c d"))
	assert.InDelta(t, 2*(0.5*1.0)/(0.5+1.0), FMeasure("a b", "a"), 1e-9)
}

// TestFMeasureIdentity checks F(p, p) = 1 for non-empty text.
func TestFMeasureIdentity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := rapid.StringMatching(`[a-z]{1,6}( [a-z]{1,6}){0,8}`).Draw(rt, "p")
		if score := FMeasure(p, p); score != 1 {
			rt.Fatalf("FMeasure(%q, %q) = %v", p, p, score)
		}
	})
}
