package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for dataset files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

const maxLineBytes = 64 * 1024 * 1024

// Source yields raw JSON records until io.EOF.
type Source interface {
	Next() (json.RawMessage, error)
	Close() error
}

// Reader is a dataset file opened for sequential reading.
type Reader struct {
	src     Source
	baseDir string
	index   int
}

// Open opens a dataset file, choosing the format from its extension.
func Open(path string) (*Reader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var (
		src Source
		err error
	)
	switch ext {
	case ".jsonl", ".ndjson":
		src, err = openJSONLines(path)
	case ".json":
		src, err = openJSONArray(path)
	case ".yml", ".yaml":
		src, err = openYAML(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	return &Reader{src: src, baseDir: filepath.Dir(path)}, nil
}

// BaseDir returns the directory media paths resolve against.
func (r *Reader) BaseDir() string {
	return r.baseDir
}

// NextRaw returns the next undecoded record.
func (r *Reader) NextRaw() (json.RawMessage, error) {
	raw, err := r.src.Next()
	if err != nil {
		return nil, err
	}
	r.index++
	return raw, nil
}

// Next returns the next decoded record, or io.EOF.
func (r *Reader) Next() (Record, error) {
	raw, err := r.NextRaw()
	if err != nil {
		return Record{}, err
	}
	record, err := DecodeRecord(raw)
	if err != nil {
		return Record{}, fmt.Errorf("record %d: %w", r.index, err)
	}
	return record, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.src.Close()
}

type jsonLines struct {
	file    *os.File
	scanner *bufio.Scanner
}

func openJSONLines(path string) (Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &jsonLines{file: file, scanner: scanner}, nil
}

func (s *jsonLines) Next() (json.RawMessage, error) {
	for s.scanner.Scan() {
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		return json.RawMessage(bytes.Clone(line)), nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return nil, io.EOF
}

func (s *jsonLines) Close() error {
	return s.file.Close()
}

type jsonArray struct {
	file    *os.File
	decoder *json.Decoder
}

func openJSONArray(path string) (Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	decoder := json.NewDecoder(bufio.NewReader(file))
	token, err := decoder.Token()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '[' {
		_ = file.Close()
		return nil, fmt.Errorf("parse json: expected top-level array")
	}
	return &jsonArray{file: file, decoder: decoder}, nil
}

func (s *jsonArray) Next() (json.RawMessage, error) {
	if !s.decoder.More() {
		return nil, io.EOF
	}
	var raw json.RawMessage
	if err := s.decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return raw, nil
}

func (s *jsonArray) Close() error {
	return s.file.Close()
}

// sliceSource serves records that were read up front.
type sliceSource struct {
	records []json.RawMessage
	index   int
}

func openYAML(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	var docs []any
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&docs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	records := make([]json.RawMessage, 0, len(docs))
	for i, doc := range docs {
		encoded, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("parse yaml record %d: %w", i+1, err)
		}
		records = append(records, encoded)
	}
	return &sliceSource{records: records}, nil
}

func (s *sliceSource) Next() (json.RawMessage, error) {
	if s.index >= len(s.records) {
		return nil, io.EOF
	}
	record := s.records[s.index]
	s.index++
	return record, nil
}

func (s *sliceSource) Close() error {
	return nil
}
