package eval

// Sample is one model prediction with the references it is scored against.
type Sample struct {
	Predict  string
	Answers  []string
	Type     string
	BBox     []any
	BBoxList [][]any
	Content  string
}

// ScoreRecord holds the per-sample metric values. Zero means the metric did
// not apply or scored zero.
type ScoreRecord struct {
	TextMatch float64 `json:"text_match"`
	TEDS      float64 `json:"teds"`
	IoU       float64 `json:"iou"`
	VQAANLS   float64 `json:"vqa_anls"`
	BLEU      float64 `json:"bleu"`
	FMeasure  float64 `json:"f_measure"`
	AvgANLS   float64 `json:"avg_anls"`
}

// Matched reports whether the text match metric passed.
func (r ScoreRecord) Matched() bool {
	return r.TextMatch > 0
}

func (s Sample) hasBoxes() bool {
	return len(s.BBox) > 0 || len(s.BBoxList) > 0
}
