//go:build cucumber
// +build cucumber

package cucumber

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"omnibench/internal/testutil"
)

const featurePNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

const featureWAV = "data:audio/wav;base64,UklGRiQAAABXQVZFZm10IBAAAAABAAEAQB8AAIA+AAACABAAZGF0YQAAAAA="

// anEmptyGitRepository creates a committed repository and enters it.
func (s *featureState) anEmptyGitRepository() error {
	dir, err := os.MkdirTemp("", "omnibench-feature-*")
	if err != nil {
		return fmt.Errorf("create temp repo: %w", err)
	}
	s.repoDir = dir
	if err := s.initGitRepo(dir); err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	return nil
}

// aGitRepositoryWithValidConfig adds a config and two small datasets.
func (s *featureState) aGitRepositoryWithValidConfig() error {
	if err := s.anEmptyGitRepository(); err != nil {
		return err
	}
	s.configPath = filepath.Join(s.repoDir, ".omnibench", "config.yml")
	if err := s.writeFile(filepath.Join("data", "ocr.jsonl"), strings.Join([]string{
		`{"id": 1, "type": "text recognition en", "question": "What does it say?", "answers": ["hello"], "image": "` + featurePNG + `"}`,
		`{"id": 2, "type": "text recognition en", "question": "What does it say?", "answers": ["world"], "image": "` + featurePNG + `"}`,
	}, "\n")+"\n"); err != nil {
		return err
	}
	if err := s.writeFile(filepath.Join("data", "stt.jsonl"), `{"id": "a", "audio": "`+featureWAV+`", "text": "안녕하세요"}`+"\n"); err != nil {
		return err
	}
	return s.writeConfig(validConfigYAML("http://127.0.0.1:1"))
}

func (s *featureState) theConfigIsInvalid() error {
	return s.writeConfig(strings.Replace(validConfigYAML("http://127.0.0.1:1"), "version: 1", "version: 2", 1))
}

// aFakeOracleThatAnswers points the config at a fake streaming oracle.
func (s *featureState) aFakeOracleThatAnswers(answer string) error {
	s.oracle = testutil.NewOracle(testutil.EchoAnswer(answer))
	return s.writeConfig(validConfigYAML(s.oracle.BaseURL))
}

func (s *featureState) oracleCredentialsAreAvailable() error {
	return s.setEnv(featureKeyEnv, "feature-key")
}

func (s *featureState) oracleCredentialsAreMissing() error {
	return s.setEnv(featureKeyEnv, "")
}

func (s *featureState) writeConfig(contents string) error {
	if s.configPath == "" {
		return fmt.Errorf("config path is not set")
	}
	return s.writeFile(filepath.Join(".omnibench", "config.yml"), contents)
}

func (s *featureState) writeFile(rel, contents string) error {
	path := filepath.Join(s.repoDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(rel), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

func validConfigYAML(baseURL string) string {
	return fmt.Sprintf(`version: 1
output_dir: ".omnibench/results"
warehouse: ".omnibench/warehouse.duckdb"
log_level: error

oracle:
  provider: openai
  base_url: %q
  model: "feature-model"
  api_key_env: %s

benchmarks:
  - id: ocr
    type: ocr
    dataset: data/ocr.jsonl
    workers: 2
  - id: stt
    type: stt
    dataset: data/stt.jsonl

default_benchmark: ocr
`, baseURL, featureKeyEnv)
}
