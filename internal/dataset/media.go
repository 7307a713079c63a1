package dataset

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoMedia is returned when a record has no image or audio payload.
var ErrNoMedia = errors.New("record has no media")

// Media references image or audio bytes inline or by file path.
type Media struct {
	Path string
	Data []byte
	// MIME is set for data URIs.
	MIME string
}

type mediaObject struct {
	Bytes string `json:"bytes"`
	Path  string `json:"path"`
}

// UnmarshalJSON accepts a path string, a data URI, or {"bytes", "path"}.
func (m *Media) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		if strings.HasPrefix(text, "data:") {
			mime, payload, err := parseDataURI(text)
			if err != nil {
				return err
			}
			*m = Media{Data: payload, MIME: mime}
			return nil
		}
		*m = Media{Path: text}
		return nil
	}
	var obj mediaObject
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return fmt.Errorf("media: %w", err)
	}
	media := Media{Path: obj.Path}
	if obj.Bytes != "" {
		payload, err := base64.StdEncoding.DecodeString(obj.Bytes)
		if err != nil {
			return fmt.Errorf("media bytes: %w", err)
		}
		media.Data = payload
	}
	*m = media
	return nil
}

// MarshalJSON writes the path, or a data URI for inline bytes.
func (m Media) MarshalJSON() ([]byte, error) {
	if len(m.Data) == 0 {
		return json.Marshal(m.Path)
	}
	mime := m.MIME
	if mime == "" {
		mime = http.DetectContentType(m.Data)
	}
	return json.Marshal("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(m.Data))
}

// Load returns the media bytes and their format (file extension style, e.g.
// "png" or "wav"). Relative paths resolve against baseDir.
func (m *Media) Load(baseDir string) ([]byte, string, error) {
	if m == nil {
		return nil, "", ErrNoMedia
	}
	if len(m.Data) > 0 {
		return m.Data, formatFor(m.Path, m.MIME, m.Data), nil
	}
	if strings.TrimSpace(m.Path) == "" {
		return nil, "", ErrNoMedia
	}
	path := m.Path
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read media: %w", err)
	}
	return data, formatFor(path, "", data), nil
}

func parseDataURI(uri string) (string, []byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return "", nil, fmt.Errorf("media: malformed data uri")
	}
	mime, encoding, _ := strings.Cut(header, ";")
	if encoding != "base64" {
		return "", nil, fmt.Errorf("media: unsupported data uri encoding %q", encoding)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("media: %w", err)
	}
	return mime, data, nil
}

// formatFor picks a short format name from the path, MIME type, or content.
func formatFor(path, mime string, data []byte) string {
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); ext != "" {
		if ext == "jpg" {
			return "jpeg"
		}
		return ext
	}
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	mime, _, _ = strings.Cut(mime, ";")
	switch mime {
	case "audio/wave", "audio/wav", "audio/x-wav":
		return "wav"
	case "audio/mpeg":
		return "mp3"
	case "application/octet-stream", "":
		return "bin"
	}
	_, sub, ok := strings.Cut(mime, "/")
	if !ok {
		return "bin"
	}
	return sub
}
