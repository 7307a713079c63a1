//go:build cucumber
// +build cucumber

package cucumber

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cucumber/godog"

	"omnibench/internal/runner"
)

// theOutputListsCommands asserts the output contains expected command names.
func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, "  "+command+" ") {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("expected exit code 0, got %d\nstdout: %s\nstderr: %s", s.exitCode, s.stdout.String(), s.stderr.String())
	}
	return nil
}

// theExitCodeIsNonZero asserts that the CLI returned an error code.
func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

func (s *featureState) theOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected stdout to contain %q, got:\n%s", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorOutputContains(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("expected stderr to contain %q, got:\n%s", text, s.stderr.String())
	}
	return nil
}

func (s *featureState) theFileExists(rel string) error {
	if _, err := os.Stat(filepath.Join(s.repoDir, rel)); err != nil {
		return fmt.Errorf("expected %s: %w", rel, err)
	}
	return nil
}

func (s *featureState) theFileContains(rel, text string) error {
	data, err := os.ReadFile(filepath.Join(s.repoDir, rel))
	if err != nil {
		return fmt.Errorf("read %s: %w", rel, err)
	}
	if !strings.Contains(string(data), text) {
		return fmt.Errorf("expected %s to contain %q, got %q", rel, text, data)
	}
	return nil
}

func (s *featureState) theLatestRunContains(benchmark, name string) error {
	runDir, err := s.latestRunDir(benchmark)
	if err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(runDir, name)); err != nil {
		return fmt.Errorf("expected %s in %s: %w", name, runDir, err)
	}
	return nil
}

func (s *featureState) theLatestRunRecordsCommit(benchmark string) error {
	runDir, err := s.latestRunDir(benchmark)
	if err != nil {
		return err
	}
	manifest, err := runner.ReadManifest(filepath.Join(runDir, runner.ManifestFile))
	if err != nil {
		return err
	}
	head, err := s.headCommit()
	if err != nil {
		return err
	}
	if manifest.Repo == nil || manifest.Repo.Commit != head {
		return fmt.Errorf("expected manifest repo commit %s, got %+v", head, manifest.Repo)
	}
	return nil
}

func (s *featureState) latestRunDir(benchmark string) (string, error) {
	dir := filepath.Join(s.repoDir, ".omnibench", "results", benchmark)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read runs: %w", err)
	}
	var runs []string
	for _, entry := range entries {
		if entry.IsDir() {
			runs = append(runs, entry.Name())
		}
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("no runs under %s", dir)
	}
	sort.Strings(runs)
	return filepath.Join(dir, runs[len(runs)-1]), nil
}
