package config

import (
	"time"

	"omnibench/internal/oracle"
	"omnibench/internal/spec"
)

// OracleConfig maps the oracle section onto the client configuration.
// The API key is resolved by the client from APIKeyEnv.
func OracleConfig(cfg spec.OracleConfig) oracle.Config {
	temperature := oracle.DefaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	return oracle.Config{
		Provider:          cfg.Provider,
		BaseURL:           cfg.BaseURL,
		Model:             cfg.Model,
		APIKeyEnv:         cfg.APIKeyEnv,
		MaxTokens:         cfg.MaxTokens,
		Temperature:       temperature,
		Timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}
}
