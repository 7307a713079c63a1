package config

import (
	"fmt"
	"os"
	"strings"

	"omnibench/internal/spec"
)

// Environment variables that override config values at load time.
const (
	EnvLogLevel      = "OMNIBENCH_LOG_LEVEL"
	EnvOutputDir     = "OMNIBENCH_OUTPUT_DIR"
	EnvOracleBaseURL = "OMNIBENCH_ORACLE_BASE_URL"
	EnvOracleModel   = "OMNIBENCH_ORACLE_MODEL"
)

// lookupEnv is replaced in tests.
var lookupEnv = os.LookupEnv

// Load reads, parses, normalizes, and validates a config file. Environment
// overrides are applied before defaults so they are validated like file values.
func Load(path string) (spec.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return spec.Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := spec.ParseConfig(data)
	if err != nil {
		return spec.Config{}, err
	}
	applyEnvOverrides(&cfg, lookupEnv)
	Normalize(&cfg)
	if err := Validate(&cfg, RootFromConfigPath(path)); err != nil {
		return spec.Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *spec.Config, lookup func(string) (string, bool)) {
	overrides := []struct {
		name   string
		target *string
	}{
		{EnvLogLevel, &cfg.LogLevel},
		{EnvOutputDir, &cfg.OutputDir},
		{EnvOracleBaseURL, &cfg.Oracle.BaseURL},
		{EnvOracleModel, &cfg.Oracle.Model},
	}
	for _, override := range overrides {
		if value, ok := lookup(override.name); ok && strings.TrimSpace(value) != "" {
			*override.target = strings.TrimSpace(value)
		}
	}
}
