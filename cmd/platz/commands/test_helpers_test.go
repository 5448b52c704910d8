package commands_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platzio/platz-go/cmd/platz/commands"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// execute runs the CLI with args against a fresh viper state and returns stdout.
// Tests using it touch global state and must not run in parallel.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	root := commands.NewRootCommand()
	root.AddCommand(commands.NewVersionCommand("1.2.3", "abc123", "2026-01-01"))

	var stdout, stderr bytes.Buffer

	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return stdout.String(), err
}

// isolateEnv clears the environment credential source for the test.
func isolateEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{"PLATZ_URL", "PLATZ_API_TOKEN", "PLATZ_USER_TOKEN", "PLATZ_PROFILE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// writeProfileFile writes a profile file under a fresh config root.
func writeProfileFile(t *testing.T, content string) string {
	t.Helper()

	home := t.TempDir()
	path := filepath.Join(home, "platz", "config.toml")

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return home
}

// newAPIServer serves handler and returns a config root whose default profile
// points at it with user token "test-user-token".
func newAPIServer(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return writeProfileFile(t, `[profiles.test]
url = "`+server.URL+`"
default = true

[profiles.test.user_token]
token = "test-user-token"
`)
}

func writeBody(t *testing.T, w http.ResponseWriter, body string) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	_, err := io.WriteString(w, body)
	assert.NoError(t, err)
}
