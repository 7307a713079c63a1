//go:build cucumber
// +build cucumber

package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/cucumber/godog"

	"omnibench/internal/testutil"
)

// featureKeyEnv names the API key variable used by feature configs.
const featureKeyEnv = "OMNIBENCH_FEATURE_KEY"

// featureState holds scenario state for cucumber CLI tests.
type featureState struct {
	repoDir     string
	configPath  string
	previousWD  string
	previousEnv map[string]*string
	oracle      *testutil.OracleServer
	stdout      bytes.Buffer
	stderr      bytes.Buffer
	exitCode    int
}

// InitializeScenario wires cucumber steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^an empty git repository$`, state.anEmptyGitRepository)
	ctx.Step(`^a git repository with a valid omnibench configuration$`, state.aGitRepositoryWithValidConfig)
	ctx.Step(`^the config is invalid$`, state.theConfigIsInvalid)
	ctx.Step(`^a fake oracle that answers "([^"]*)"$`, state.aFakeOracleThatAnswers)
	ctx.Step(`^oracle credentials are available in the environment$`, state.oracleCredentialsAreAvailable)
	ctx.Step(`^oracle credentials are missing$`, state.oracleCredentialsAreMissing)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the output contains "([^"]*)"$`, state.theOutputContains)
	ctx.Step(`^the error output contains "([^"]*)"$`, state.theErrorOutputContains)
	ctx.Step(`^the file "([^"]+)" exists$`, state.theFileExists)
	ctx.Step(`^the file "([^"]+)" contains "([^"]*)"$`, state.theFileContains)
	ctx.Step(`^the latest "([^"]+)" run contains "([^"]+)"$`, state.theLatestRunContains)
	ctx.Step(`^the latest "([^"]+)" run records the git commit$`, state.theLatestRunRecordsCommit)
}

// reset clears buffers and resets state before each scenario.
func (s *featureState) reset() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.previousEnv = map[string]*string{}
	s.repoDir = ""
	s.configPath = ""
	s.oracle = nil
}

// cleanup restores environment and removes temporary files.
func (s *featureState) cleanup() {
	if s.oracle != nil {
		s.oracle.Close()
	}
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
		s.previousWD = ""
	}
	for key, value := range s.previousEnv {
		if value == nil {
			_ = os.Unsetenv(key)
			continue
		}
		_ = os.Setenv(key, *value)
	}
	if s.repoDir != "" {
		_ = os.RemoveAll(s.repoDir)
	}
}

// setEnv records and sets an environment variable for the scenario.
func (s *featureState) setEnv(key, value string) error {
	if _, exists := s.previousEnv[key]; !exists {
		if current, ok := os.LookupEnv(key); ok {
			saved := current
			s.previousEnv[key] = &saved
		} else {
			s.previousEnv[key] = nil
		}
	}
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("set env %s: %w", key, err)
	}
	return nil
}
