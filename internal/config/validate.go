package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"omnibench/internal/dataset"
	"omnibench/internal/logging"
	"omnibench/internal/oracle"
	"omnibench/internal/spec"
)

// Validate checks a config for correctness and referenced files.
func Validate(cfg *spec.Config, baseDir string) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		collector.add("output_dir", "is required")
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		collector.add("log_level", fmt.Sprintf("must be one of %s", strings.Join(logging.Levels, ", ")))
	}
	if baseDir == "" {
		baseDir = "."
	}

	validateOracle(cfg.Oracle, collector.add)
	benchmarkIDs := validateBenchmarks(cfg, baseDir, collector.add)
	validateDefaultBenchmark(cfg, benchmarkIDs, collector.add)

	return collector.result()
}

func validateOracle(cfg spec.OracleConfig, add issueAdder) {
	switch cfg.Provider {
	case oracle.ProviderOpenAI, oracle.ProviderOpenRouter:
	case "":
		add("oracle.provider", "is required")
	default:
		add("oracle.provider", fmt.Sprintf("unsupported provider %q", cfg.Provider))
	}
	if strings.TrimSpace(cfg.Model) == "" {
		add("oracle.model", "is required")
	}
	if cfg.BaseURL != "" {
		parsed, err := url.Parse(cfg.BaseURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			add("oracle.base_url", "must be an http(s) URL")
		}
	}
	if strings.TrimSpace(cfg.APIKeyEnv) == "" {
		add("oracle.api_key_env", "is required")
	}
	if cfg.MaxTokens < 0 {
		add("oracle.max_tokens", "must be >= 0")
	}
	if cfg.Temperature != nil && (*cfg.Temperature < 0 || *cfg.Temperature > 2) {
		add("oracle.temperature", "must be between 0 and 2")
	}
	if cfg.TimeoutSeconds < 0 {
		add("oracle.timeout_seconds", "must be >= 0")
	}
	if cfg.RequestsPerSecond < 0 {
		add("oracle.requests_per_second", "must be >= 0")
	}
}

// validateBenchmarks checks benchmark entries and returns their ids.
func validateBenchmarks(cfg *spec.Config, baseDir string, add issueAdder) map[string]struct{} {
	ids := map[string]struct{}{}
	if len(cfg.Benchmarks) == 0 {
		add("benchmarks", "at least one benchmark is required")
	}
	for i, benchmark := range cfg.Benchmarks {
		fieldPrefix := fmt.Sprintf("benchmarks[%d]", i)
		id := strings.TrimSpace(benchmark.ID)
		if id == "" {
			add(fieldPrefix+".id", "is required")
		} else if strings.ContainsAny(id, `/\`) {
			add(fieldPrefix+".id", "must not contain path separators")
		} else if _, exists := ids[id]; exists {
			add("benchmarks.id", fmt.Sprintf("duplicate id %q", id))
		} else {
			ids[id] = struct{}{}
		}

		switch dataset.Kind(benchmark.Type) {
		case dataset.KindOCR, dataset.KindSTT:
		case "":
			add(fieldPrefix+".type", "is required")
		default:
			add(fieldPrefix+".type", fmt.Sprintf("unsupported type %q", benchmark.Type))
		}
		if benchmark.TaskFilter != "" && dataset.Kind(benchmark.Type) == dataset.KindSTT {
			add(fieldPrefix+".task_filter", "only applies to ocr benchmarks")
		}
		if benchmark.Workers < 0 {
			add(fieldPrefix+".workers", "must be >= 0")
		}
		if benchmark.Limit < 0 {
			add(fieldPrefix+".limit", "must be >= 0")
		}
		if benchmark.MaxTokens < 0 {
			add(fieldPrefix+".max_tokens", "must be >= 0")
		}
		validateDatasetPath(benchmark.Dataset, fieldPrefix+".dataset", baseDir, add)
	}
	return ids
}

func validateDatasetPath(path, field, baseDir string, add issueAdder) {
	if strings.TrimSpace(path) == "" {
		add(field, "is required")
		return
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson", ".json", ".yml", ".yaml":
	default:
		add(field, fmt.Sprintf("unsupported dataset format %q", filepath.Ext(path)))
		return
	}
	info, err := os.Stat(ResolvePath(baseDir, path))
	if err != nil {
		if os.IsNotExist(err) {
			add(field, fmt.Sprintf("file not found: %s", path))
			return
		}
		add(field, fmt.Sprintf("stat failed: %v", err))
		return
	}
	if info.IsDir() {
		add(field, fmt.Sprintf("is a directory: %s", path))
	}
}

// validateDefaultBenchmark ensures the default benchmark exists.
func validateDefaultBenchmark(cfg *spec.Config, ids map[string]struct{}, add issueAdder) {
	defaultBenchmark := strings.TrimSpace(cfg.DefaultBenchmark)
	if defaultBenchmark == "" {
		if len(cfg.Benchmarks) > 1 {
			add("default_benchmark", "is required when more than one benchmark is configured")
		}
		return
	}
	if _, ok := ids[defaultBenchmark]; !ok {
		add("default_benchmark", fmt.Sprintf("unknown benchmark %q", defaultBenchmark))
	}
}
