package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestEvaluateSampleNoAnswers verifies an empty answer list scores all zeros.
func TestEvaluateSampleNoAnswers(t *testing.T) {
	got := EvaluateSample(Sample{Predict: "anything", Type: "reasoning vqa", BBox: []any{0, 0, 1, 1}})
	assert.Equal(t, ScoreRecord{}, got)
}

// TestEvaluateSampleReasoningVQA verifies the VQA family scoring path.
func TestEvaluateSampleReasoningVQA(t *testing.T) {
	got := EvaluateSample(Sample{Predict: "the answer is 42", Answers: []string{"42"}, Type: "reasoning vqa"})
	assert.Equal(t, 1.0, got.TextMatch)
	assert.GreaterOrEqual(t, got.VQAANLS, 0.5)
	assert.Equal(t, 1.0, got.AvgANLS)
	assert.Zero(t, got.BLEU)
	assert.Zero(t, got.FMeasure)
	assert.Zero(t, got.TEDS)
	assert.Zero(t, got.IoU)
}

// TestEvaluateSampleTableParsing verifies TEDS uses the structured content.
func TestEvaluateSampleTableParsing(t *testing.T) {
	table := "<table><tr><td>a</td><td>b</td></tr></table>"
	got := EvaluateSample(Sample{
		Predict: table,
		Answers: []string{"unused"},
		Type:    "table parsing en",
		Content: table,
	})
	assert.Equal(t, 1.0, got.TEDS)

	fallback := EvaluateSample(Sample{Predict: table, Answers: []string{table}, Type: "table parsing cn"})
	assert.Equal(t, 1.0, fallback.TEDS)

	substring := EvaluateSample(Sample{Predict: table, Answers: []string{table}, Type: "table parsing en v2"})
	assert.Zero(t, substring.TEDS)
}

// TestEvaluateSampleOCRUsesFirstAnswer verifies BLEU and F-measure ignore
// later answers.
func TestEvaluateSampleOCRUsesFirstAnswer(t *testing.T) {
	got := EvaluateSample(Sample{
		Predict: "hello world",
		Answers: []string{"hello there", "hello world"},
		Type:    "full-page OCR en",
	})
	assert.InDelta(t, 0.5, got.BLEU, 1e-9)
	assert.InDelta(t, 0.5, got.FMeasure, 1e-9)
	assert.Equal(t, 1.0, got.TextMatch)
	assert.Zero(t, got.VQAANLS)
}

// TestEvaluateSampleIoUProxy verifies the positioning proxy copies text match.
func TestEvaluateSampleIoUProxy(t *testing.T) {
	cases := []struct {
		name   string
		sample Sample
		want   float64
	}{
		{"grounding match", Sample{Predict: "[10, 20, 30, 40]", Answers: []string{"10, 20, 30, 40"}, Type: "text grounding en"}, 1},
		{"grounding miss", Sample{Predict: "nowhere", Answers: []string{"[1, 2, 3, 4]"}, Type: "text grounding en"}, 0},
		{"agent", Sample{Predict: "tap settings", Answers: []string{"settings"}, Type: "mobile agent"}, 1},
		{"bbox present", Sample{Predict: "word", Answers: []string{"word"}, Type: "chart parsing", BBox: []any{1, 2, 3, 4}}, 1},
		{"bbox list present", Sample{Predict: "word", Answers: []string{"word"}, Type: "chart parsing", BBoxList: [][]any{{1, 2, 3, 4}}}, 1},
		{"not positional", Sample{Predict: "word", Answers: []string{"word"}, Type: "chart parsing"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluateSample(tc.sample).IoU)
		})
	}
}

// TestEvaluateSampleEmptyFirstAnswer verifies an empty first answer skips
// first-answer metrics.
func TestEvaluateSampleEmptyFirstAnswer(t *testing.T) {
	got := EvaluateSample(Sample{Predict: "text", Answers: []string{"", "text"}, Type: "full-page ocr"})
	assert.Equal(t, 1.0, got.TextMatch)
	assert.Zero(t, got.AvgANLS)
	assert.Zero(t, got.BLEU)
	assert.Zero(t, got.FMeasure)
}

// TestEvaluateSampleIdempotent checks repeated evaluation is identical.
func TestEvaluateSampleIdempotent(t *testing.T) {
	types := []string{"reasoning vqa", "full-page ocr", "table parsing en", "text spotting", "app agent", "other"}
	rapid.Check(t, func(rt *rapid.T) {
		sample := Sample{
			Predict: rapid.String().Draw(rt, "predict"),
			Answers: rapid.SliceOfN(rapid.String(), 0, 3).Draw(rt, "answers"),
			Type:    rapid.SampledFrom(types).Draw(rt, "type"),
			Content: rapid.String().Draw(rt, "content"),
		}
		first := EvaluateSample(sample)
		second := EvaluateSample(sample)
		require.Equal(rt, first, second)
		for _, v := range []float64{first.TextMatch, first.TEDS, first.IoU, first.VQAANLS, first.BLEU, first.FMeasure, first.AvgANLS} {
			if v < 0 || v > 1 {
				rt.Fatalf("score out of range: %+v", first)
			}
		}
	})
}
