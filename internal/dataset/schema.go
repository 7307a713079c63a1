package dataset

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Kind names the record layout of a dataset.
type Kind string

const (
	KindOCR Kind = "ocr"
	KindSTT Kind = "stt"
)

const schemaBaseURL = "https://omnibench.local/"

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	schemaOnce   sync.Once
	schemaByKind map[Kind]*jsonschema.Schema
	schemaErr    error
)

// RecordIssue reports a record that failed schema validation.
type RecordIssue struct {
	Index   int
	Message string
}

func compileSchemas() {
	schemaByKind = map[Kind]*jsonschema.Schema{}
	for _, kind := range []Kind{KindOCR, KindSTT} {
		name := "schemas/" + string(kind) + ".schema.json"
		data, err := schemaFS.ReadFile(name)
		if err != nil {
			schemaErr = fmt.Errorf("read schema %s: %w", name, err)
			return
		}
		schema, err := jsonschema.CompileString(schemaBaseURL+name, string(data))
		if err != nil {
			schemaErr = fmt.Errorf("compile schema %s: %w", name, err)
			return
		}
		schemaByKind[kind] = schema
	}
}

func schemaFor(kind Kind) (*jsonschema.Schema, error) {
	schemaOnce.Do(compileSchemas)
	if schemaErr != nil {
		return nil, schemaErr
	}
	schema, ok := schemaByKind[kind]
	if !ok {
		return nil, fmt.Errorf("no schema for dataset kind %q", kind)
	}
	return schema, nil
}

// ValidateRecord checks one raw record against the schema for kind.
func ValidateRecord(kind Kind, raw json.RawMessage) error {
	schema, err := schemaFor(kind)
	if err != nil {
		return err
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return schema.Validate(value)
}

// ValidateFile validates every record of the dataset at path and returns the
// failing records. maxIssues caps the returned list; 0 means no cap.
func ValidateFile(path string, kind Kind, maxIssues int) (int, []RecordIssue, error) {
	if _, err := schemaFor(kind); err != nil {
		return 0, nil, err
	}
	reader, err := Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer reader.Close()

	count := 0
	var issues []RecordIssue
	for {
		raw, err := reader.NextRaw()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, issues, err
		}
		count++
		if err := ValidateRecord(kind, raw); err != nil {
			if maxIssues == 0 || len(issues) < maxIssues {
				issues = append(issues, RecordIssue{Index: count, Message: err.Error()})
			}
			continue
		}
		if _, err := DecodeRecord(raw); err != nil {
			if maxIssues == 0 || len(issues) < maxIssues {
				issues = append(issues, RecordIssue{Index: count, Message: err.Error()})
			}
		}
	}
	return count, issues, nil
}
