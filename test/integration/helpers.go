//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	ServerURL  string
	APIToken   string
	PlatzPath  string
	Verbose    bool
	AllowWrite bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		ServerURL:  os.Getenv("PLATZ_URL"),
		APIToken:   os.Getenv("PLATZ_API_TOKEN"),
		PlatzPath:  getPlatzPath(),
		Verbose:    os.Getenv("PLATZ_TEST_VERBOSE") == "true",
		AllowWrite: os.Getenv("PLATZ_TEST_ALLOW_WRITE") == "true",
	}
}

// getPlatzPath determines the path to the platz binary.
func getPlatzPath() string {
	if path := os.Getenv("PLATZ_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../platz", "./platz", "../platz"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "platz"
}

// SkipIfMissingConfig skips the test when no live server is configured.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.ServerURL == "" || config.APIToken == "" {
		t.Skip("PLATZ_URL and PLATZ_API_TOKEN not set, skipping integration test")
	}
}

// CommandRunner runs the platz binary.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{config: config, t: t}
}

// Available reports whether the platz binary can be found.
func (runner *CommandRunner) Available() bool {
	_, err := exec.LookPath(runner.config.PlatzPath)

	return err == nil
}

// Run executes a platz command and returns its output.
func (runner *CommandRunner) Run(args ...string) (string, string, error) {
	cmd := exec.Command(runner.config.PlatzPath, args...) //nolint:gosec // test binary path

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.PlatzPath, strings.Join(args, " "))
	}

	err := cmd.Run()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdoutBuf.String(), stderrBuf.String())
	}

	return stdoutBuf.String(), stderrBuf.String(), err
}
