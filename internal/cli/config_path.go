package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"omnibench/internal/config"
	"omnibench/internal/spec"
)

// project is a loaded config together with the root its paths resolve from.
type project struct {
	cfg        spec.Config
	configPath string
	root       string
}

// outputDir returns the absolute results root, honoring an override.
func (p project) outputDir(override string) string {
	if strings.TrimSpace(override) != "" {
		return absPath(override)
	}
	return config.ResolvePath(p.root, p.cfg.OutputDir)
}

// warehousePath returns the DuckDB file location, honoring an override.
func (p project) warehousePath(override string) string {
	if strings.TrimSpace(override) != "" {
		return absPath(override)
	}
	warehouse := p.cfg.Warehouse
	if warehouse == "" {
		warehouse = config.DefaultWarehouse
	}
	return config.ResolvePath(p.root, warehouse)
}

// benchmark picks the benchmark by id, falling back to default_benchmark.
func (p project) benchmark(id string) (spec.BenchmarkConfig, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = p.cfg.DefaultBenchmark
	}
	if id == "" {
		return spec.BenchmarkConfig{}, fmt.Errorf("--benchmark is required when no default_benchmark is set")
	}
	benchmark, ok := p.cfg.Benchmark(id)
	if !ok {
		return spec.BenchmarkConfig{}, fmt.Errorf("unknown benchmark %q", id)
	}
	return benchmark, nil
}

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadProject resolves and loads the config file.
func loadProject(configPath string) (project, error) {
	resolved, err := resolveConfigPath(configPath)
	if err != nil {
		return project{}, err
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return project{}, err
	}
	return project{cfg: cfg, configPath: resolved, root: config.RootFromConfigPath(resolved)}, nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
