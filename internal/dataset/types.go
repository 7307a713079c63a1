// Package dataset reads benchmark samples from JSONL, JSON, and YAML files.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one dataset row. OCR rows use Question, Answers, and Image; STT
// rows use Audio and Text.
type Record struct {
	ID          string
	DatasetName string
	Type        string
	Question    string
	Answers     []string
	Image       *Media
	Audio       *Media
	Text        string
	BBox        []any
	BBoxList    [][]any
	Content     string
	// Predict holds a precomputed model output for offline scoring.
	Predict string
}

type rawRecord struct {
	ID          json.RawMessage `json:"id"`
	DatasetName string          `json:"dataset_name"`
	Type        string          `json:"type"`
	Question    string          `json:"question"`
	Answers     json.RawMessage `json:"answers"`
	Image       *Media          `json:"image"`
	Audio       *Media          `json:"audio"`
	Text        string          `json:"text"`
	BBox        []any           `json:"bbox"`
	BBoxList    [][]any         `json:"bbox_list"`
	Content     string          `json:"content"`
	Predict     string          `json:"predict"`
}

// DecodeRecord parses a JSON object into a Record. Numeric ids and answers
// keep their literal text.
func DecodeRecord(data []byte) (Record, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw rawRecord
	if err := decoder.Decode(&raw); err != nil {
		return Record{}, fmt.Errorf("decode record: %w", err)
	}
	id, err := scalarText(raw.ID)
	if err != nil {
		return Record{}, fmt.Errorf("decode record id: %w", err)
	}
	answers, err := decodeAnswers(raw.Answers)
	if err != nil {
		return Record{}, fmt.Errorf("decode record answers: %w", err)
	}
	return Record{
		ID:          id,
		DatasetName: raw.DatasetName,
		Type:        raw.Type,
		Question:    raw.Question,
		Answers:     answers,
		Image:       raw.Image,
		Audio:       raw.Audio,
		Text:        raw.Text,
		BBox:        raw.BBox,
		BBoxList:    raw.BBoxList,
		Content:     raw.Content,
		Predict:     raw.Predict,
	}, nil
}

// decodeAnswers accepts a list of strings or numbers, or a single scalar.
func decodeAnswers(data json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '[' {
		text, err := scalarText(trimmed)
		if err != nil {
			return nil, err
		}
		return []string{text}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	answers := make([]string, 0, len(items))
	for _, item := range items {
		text, err := scalarText(item)
		if err != nil {
			return nil, err
		}
		answers = append(answers, text)
	}
	return answers, nil
}

// scalarText renders a JSON string, number, or bool as text.
func scalarText(data json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return "", err
		}
		return text, nil
	case '{', '[':
		return "", fmt.Errorf("expected scalar, got %s", abbreviate(string(trimmed)))
	case 't', 'f':
		value, err := strconv.ParseBool(string(trimmed))
		if err != nil {
			return "", err
		}
		if value {
			return "True", nil
		}
		return "False", nil
	default:
		return string(trimmed), nil
	}
}

func abbreviate(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > 40 {
		return text[:40] + "..."
	}
	return text
}
