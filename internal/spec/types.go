package spec

// Config is the parsed .omnibench/config.yml document.
type Config struct {
	Version          int               `yaml:"version"`
	OutputDir        string            `yaml:"output_dir"`
	Warehouse        string            `yaml:"warehouse"`
	LogLevel         string            `yaml:"log_level"`
	Oracle           OracleConfig      `yaml:"oracle"`
	Benchmarks       []BenchmarkConfig `yaml:"benchmarks"`
	DefaultBenchmark string            `yaml:"default_benchmark"`
}

type OracleConfig struct {
	Provider          string   `yaml:"provider"`
	BaseURL           string   `yaml:"base_url"`
	Model             string   `yaml:"model"`
	APIKeyEnv         string   `yaml:"api_key_env"`
	MaxTokens         int      `yaml:"max_tokens"`
	Temperature       *float64 `yaml:"temperature"`
	TimeoutSeconds    int      `yaml:"timeout_seconds"`
	RequestsPerSecond float64  `yaml:"requests_per_second"`
}

type BenchmarkConfig struct {
	ID         string `yaml:"id"`
	Type       string `yaml:"type"`
	Dataset    string `yaml:"dataset"`
	Workers    int    `yaml:"workers"`
	Limit      int    `yaml:"limit"`
	TaskFilter string `yaml:"task_filter"`
	Prompt     string `yaml:"prompt"`
	MaxTokens  int    `yaml:"max_tokens"`

	// ValidateRecords checks every record against the dataset schema
	// before the run starts.
	ValidateRecords bool `yaml:"validate_records"`
}

// Benchmark looks up a benchmark by id.
func (c Config) Benchmark(id string) (BenchmarkConfig, bool) {
	for _, benchmark := range c.Benchmarks {
		if benchmark.ID == id {
			return benchmark, true
		}
	}
	return BenchmarkConfig{}, false
}
