package oracle

import (
	"encoding/base64"
	"fmt"
)

type chatRequest struct {
	Model       string        `json:"model"`
	Stream      bool          `json:"stream"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type       string      `json:"type"`
	Text       string      `json:"text,omitempty"`
	ImageURL   *imageURL   `json:"image_url,omitempty"`
	InputAudio *inputAudio `json:"input_audio,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type inputAudio struct {
	Data   string `json:"data"`
	Format string `json:"format"`
}

// buildContent places media ahead of the instruction text.
func buildContent(req Request) ([]contentPart, error) {
	parts := make([]contentPart, 0, len(req.Media)+1)
	for i, media := range req.Media {
		if len(media.Data) == 0 {
			return nil, fmt.Errorf("media %d is empty", i)
		}
		encoded := base64.StdEncoding.EncodeToString(media.Data)
		switch media.Kind {
		case MediaImage:
			format := media.Format
			if format == "" {
				format = "png"
			}
			parts = append(parts, contentPart{
				Type:     "image_url",
				ImageURL: &imageURL{URL: "data:image/" + format + ";base64," + encoded},
			})
		case MediaAudio:
			format := media.Format
			if format == "" {
				format = "wav"
			}
			parts = append(parts, contentPart{
				Type:       "input_audio",
				InputAudio: &inputAudio{Data: encoded, Format: format},
			})
		default:
			return nil, fmt.Errorf("media %d has unsupported kind %q", i, media.Kind)
		}
	}
	parts = append(parts, contentPart{Type: "text", Text: req.Instruction})
	return parts, nil
}
