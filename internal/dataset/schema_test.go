package dataset

import "testing"

func TestValidateRecord(t *testing.T) {
	cases := []struct {
		name  string
		kind  Kind
		input string
		ok    bool
	}{
		{name: "ocr ok", kind: KindOCR, input: `{"id": 1, "question": "q", "answers": ["a", 3], "image": "a.png"}`, ok: true},
		{name: "ocr scalar answer", kind: KindOCR, input: `{"question": "q", "answers": 12, "image": {"path": "a.png"}}`, ok: true},
		{name: "ocr missing image", kind: KindOCR, input: `{"question": "q", "answers": ["a"]}`},
		{name: "ocr empty media object", kind: KindOCR, input: `{"question": "q", "answers": ["a"], "image": {}}`},
		{name: "stt ok", kind: KindSTT, input: `{"id": "s1", "audio": "a.wav", "text": "hello"}`, ok: true},
		{name: "stt missing text", kind: KindSTT, input: `{"audio": "a.wav"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRecord(tc.kind, []byte(tc.input))
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestValidateRecordUnknownKind(t *testing.T) {
	if err := ValidateRecord(Kind("video"), []byte(`{}`)); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestValidateFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "stt.jsonl", `{"id": 1, "audio": "a.wav", "text": "one"}
{"id": 2, "audio": "b.wav"}
{"id": 3, "text": "three"}
`)
	count, issues, err := ValidateFile(path, KindSTT, 1)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 records, got %d", count)
	}
	if len(issues) != 1 || issues[0].Index != 2 {
		t.Fatalf("unexpected issues: %+v", issues)
	}
}
