package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const scaffoldConfigTemplate = `version: 1
output_dir: %q
warehouse: %q
log_level: info

oracle:
  provider: openai
  model: "gpt-4o-mini"
  api_key_env: OMNIBENCH_API_KEY
  temperature: 0.1
  timeout_seconds: 120
  requests_per_second: 0

benchmarks:
  - id: ocr_sample
    type: ocr
    dataset: ".omnibench/datasets/ocr_sample.jsonl"
    workers: 15
    limit: 100
  - id: stt_sample
    type: stt
    dataset: ".omnibench/datasets/stt_sample.jsonl"
    workers: 15
    max_tokens: 1024

default_benchmark: ocr_sample
`

const samplePNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

const sampleWAV = "data:audio/wav;base64,UklGRiQAAABXQVZFZm10IBAAAAABAAEAQB8AAIA+AAACABAAZGF0YQAAAAA="

var scaffoldDatasets = map[string]string{
	"ocr_sample.jsonl": `{"id": 1, "dataset_name": "sample", "type": "text recognition en", "question": "What text is shown in the image?", "answers": ["omnibench"], "image": "` + samplePNG + `"}` + "\n",
	"stt_sample.jsonl": `{"id": "stt-1", "audio": "` + sampleWAV + `", "text": "안녕하세요"}` + "\n",
}

// RenderScaffoldConfig returns the starter config for the given output dir.
func RenderScaffoldConfig(outputDir string) string {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	return fmt.Sprintf(scaffoldConfigTemplate, outputDir, DefaultWarehouse)
}

// Scaffold writes a starter config and sample datasets under root. Existing
// files are never overwritten.
func Scaffold(root, outputDir string) (string, error) {
	configPath := ConfigPath(root)
	if err := ensureAbsent(configPath); err != nil {
		return "", err
	}
	datasetsDir := filepath.Join(ConfigDir(root), "datasets")
	for name := range scaffoldDatasets {
		if err := ensureAbsent(filepath.Join(datasetsDir, name)); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(datasetsDir, 0o755); err != nil {
		return "", fmt.Errorf("create datasets dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(RenderScaffoldConfig(outputDir)), 0o644); err != nil {
		return "", fmt.Errorf("write config file: %w", err)
	}
	for name, content := range scaffoldDatasets {
		if err := os.WriteFile(filepath.Join(datasetsDir, name), []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("write dataset %s: %w", name, err)
		}
	}
	return configPath, nil
}

func ensureAbsent(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("path %q is a directory", path)
		}
		return fmt.Errorf("file already exists at %q", path)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}
