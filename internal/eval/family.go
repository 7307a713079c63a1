package eval

import "strings"

// Families is a set of task families a task type belongs to. The empty set
// is the generic family.
type Families uint8

const (
	// FamilyVQA marks visual question answering tasks scored with VQA ANLS.
	FamilyVQA Families = 1 << iota
	// FamilyOCR marks text extraction tasks scored with BLEU and F-measure.
	FamilyOCR
	// FamilyTable marks table parsing tasks scored with TEDS.
	FamilyTable
	// FamilyPositioning marks grounding and spotting tasks scored with IoU.
	FamilyPositioning
)

// Generic is the family set of task types no other family claims.
const Generic Families = 0

var vqaTasks = []string{
	"app agent",
	"ascii art",
	"math qa",
	"reasoning vqa",
	"science qa",
	"text recognition",
	"document classification",
	"cognition vqa",
	"diagram qa",
}

var ocrTasks = []string{
	"full-page ocr",
	"handwritten answer extraction",
	"key information extraction",
	"text translation",
	"formula recognition",
}

// tableTasks match the raw type exactly.
var tableTasks = []string{
	"table parsing en",
	"table parsing cn",
}

var positioningTasks = []string{
	"text grounding",
	"vqa with position",
	"text spotting",
	"agent",
}

// Classify maps a raw task type to its families.
func Classify(taskType string) Families {
	lower := strings.ToLower(taskType)
	var families Families
	if containsAny(lower, vqaTasks) {
		families |= FamilyVQA
	}
	if containsAny(lower, ocrTasks) {
		families |= FamilyOCR
	}
	for _, name := range tableTasks {
		if taskType == name {
			families |= FamilyTable
			break
		}
	}
	if containsAny(lower, positioningTasks) {
		families |= FamilyPositioning
	}
	return families
}

// Has reports whether every family in other is present.
func (f Families) Has(other Families) bool {
	return f&other == other
}

// String lists family names joined by "+", or "generic".
func (f Families) String() string {
	if f == Generic {
		return "generic"
	}
	var names []string
	for _, entry := range []struct {
		flag Families
		name string
	}{
		{FamilyVQA, "vqa"},
		{FamilyOCR, "ocr"},
		{FamilyTable, "table"},
		{FamilyPositioning, "positioning"},
	} {
		if f.Has(entry.flag) {
			names = append(names, entry.name)
		}
	}
	return strings.Join(names, "+")
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
