package oracle

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"

	DefaultAPIKeyEnv   = "OMNIBENCH_API_KEY"
	DefaultMaxTokens   = 2048
	DefaultTemperature = 0.1
	DefaultTimeout     = 120 * time.Second
)

var defaultBaseURLs = map[string]string{
	ProviderOpenAI:     "https://api.openai.com/v1",
	ProviderOpenRouter: "https://openrouter.ai/api/v1",
}

// Config describes how to reach the oracle endpoint.
type Config struct {
	Provider  string
	BaseURL   string
	Model     string
	APIKeyEnv string
	// APIKey takes precedence over APIKeyEnv.
	APIKey            string
	MaxTokens         int
	Temperature       float64
	Timeout           time.Duration
	RequestsPerSecond float64
}

// withDefaults fills unset fields and resolves the API key.
func (c Config) withDefaults() (Config, error) {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		base, ok := defaultBaseURLs[c.Provider]
		if !ok {
			return Config{}, fmt.Errorf("unsupported provider %q", c.Provider)
		}
		c.BaseURL = base
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if strings.TrimSpace(c.Model) == "" {
		return Config{}, fmt.Errorf("model is required")
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Temperature < 0 {
		c.Temperature = DefaultTemperature
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.APIKeyEnv == "" {
		c.APIKeyEnv = DefaultAPIKeyEnv
	}
	if strings.TrimSpace(c.APIKey) == "" {
		c.APIKey = strings.TrimSpace(os.Getenv(c.APIKeyEnv))
	}
	if c.APIKey == "" {
		return Config{}, fmt.Errorf("%w: export %s", ErrMissingAPIKey, c.APIKeyEnv)
	}
	return c, nil
}
