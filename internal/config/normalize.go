package config

import (
	"strings"

	"omnibench/internal/oracle"
	"omnibench/internal/runner"
	"omnibench/internal/spec"
)

// DefaultTimeoutSeconds bounds a single oracle call.
const DefaultTimeoutSeconds = 120

// Normalize fills defaults in place.
func Normalize(cfg *spec.Config) {
	if cfg.DefaultBenchmark == "" && len(cfg.Benchmarks) == 1 {
		cfg.DefaultBenchmark = cfg.Benchmarks[0].ID
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Oracle.Provider = strings.ToLower(strings.TrimSpace(cfg.Oracle.Provider))
	if cfg.Oracle.Provider == "" {
		cfg.Oracle.Provider = oracle.ProviderOpenAI
	}
	if cfg.Oracle.APIKeyEnv == "" {
		cfg.Oracle.APIKeyEnv = oracle.DefaultAPIKeyEnv
	}
	if cfg.Oracle.TimeoutSeconds == 0 {
		cfg.Oracle.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.Oracle.Temperature == nil {
		temperature := oracle.DefaultTemperature
		cfg.Oracle.Temperature = &temperature
	}

	for i := range cfg.Benchmarks {
		benchmark := &cfg.Benchmarks[i]
		benchmark.Type = strings.ToLower(strings.TrimSpace(benchmark.Type))
		if benchmark.Workers == 0 {
			benchmark.Workers = runner.DefaultWorkers
		}
	}
}
