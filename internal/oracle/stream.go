package oracle

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type streamChunk struct {
	Choices []streamChoice `json:"choices"`
	Error   *streamError   `json:"error"`
}

type streamChoice struct {
	Delta        streamDelta `json:"delta"`
	FinishReason string      `json:"finish_reason"`
}

type streamDelta struct {
	Content string `json:"content"`
}

type streamError struct {
	Message string `json:"message"`
	Code    any    `json:"code"`
}

// readStream consumes SSE chat-completion chunks, calling onFirst once when
// the first content delta arrives. It reports whether any chunk carried
// choices.
func readStream(reader io.Reader, onFirst func()) (string, bool, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var content strings.Builder
	sawChoices := false
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			break
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return "", sawChoices, fmt.Errorf("parse stream chunk: %w", err)
		}
		if chunk.Error != nil {
			return "", sawChoices, fmt.Errorf("oracle stream error: %s", chunk.Error.Message)
		}
		for _, choice := range chunk.Choices {
			sawChoices = true
			if choice.Delta.Content == "" {
				continue
			}
			if first {
				first = false
				if onFirst != nil {
					onFirst()
				}
			}
			content.WriteString(choice.Delta.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", sawChoices, fmt.Errorf("read stream: %w", err)
	}
	return content.String(), sawChoices, nil
}
