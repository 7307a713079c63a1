package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestClassify verifies task types map to their families.
func TestClassify(t *testing.T) {
	cases := []struct {
		taskType string
		want     Families
	}{
		{"reasoning VQA en", FamilyVQA},
		{"APP agent en", FamilyVQA | FamilyPositioning},
		{"full-page OCR cn", FamilyOCR},
		{"key information extraction en", FamilyOCR},
		{"table parsing en", FamilyTable},
		{"Table parsing en", Generic},
		{"table parsing en ", Generic},
		{"text grounding en", FamilyPositioning},
		{"VQA with position en", FamilyPositioning},
		{"chart parsing en", Generic},
		{"", Generic},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.taskType), "Classify(%q)", tc.taskType)
	}
}

func TestFamiliesString(t *testing.T) {
	assert.Equal(t, "vqa+positioning", (FamilyPositioning | FamilyVQA).String())
	assert.Equal(t, "generic", Generic.String())
}
