//go:build cucumber
// +build cucumber

package cucumber

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"
)

// TestCucumberFeatures runs the CLI features. OMNIBENCH_FEATURE_TAGS selects
// scenarios other than @smoke; OMNIBENCH_FEATURE_VERBOSE prints godog output.
func TestCucumberFeatures(t *testing.T) {
	options := godog.Options{
		Format:   "progress",
		Paths:    []string{filepath.Join("..", "..", "spec", "features")},
		Tags:     envOr("OMNIBENCH_FEATURE_TAGS", "@smoke"),
		Output:   io.Discard,
		TestingT: t,
		Strict:   true,
	}
	if os.Getenv("OMNIBENCH_FEATURE_VERBOSE") != "" {
		options.Format = "pretty"
		options.Output = os.Stdout
	}

	suite := godog.TestSuite{
		Name:                "omnibench-features",
		ScenarioInitializer: InitializeScenario,
		Options:             &options,
	}
	if suite.Run() != 0 {
		t.Fatalf("cucumber features failed")
	}
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
