package platzclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platzio/platz-go/pkg/platz"
	"github.com/platzio/platz-go/pkg/platzclient"
)

// recorder is a Platz stand-in that remembers the credential headers it saw.
type recorder struct {
	mutex   sync.Mutex
	server  *httptest.Server
	headers []string
}

func newRecorder(t *testing.T) *recorder {
	t.Helper()

	rec := &recorder{}
	rec.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		rec.mutex.Lock()
		defer rec.mutex.Unlock()

		if token := request.Header.Get("x-platz-token"); token != "" {
			rec.headers = append(rec.headers, "platz-token "+token)
		} else {
			rec.headers = append(rec.headers, request.Header.Get("Authorization"))
		}

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"page":1,"per_page":10,"items":[],"num_total":0}`))
	}))
	t.Cleanup(rec.server.Close)

	return rec
}

func (r *recorder) last() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if len(r.headers) == 0 {
		return ""
	}

	return r.headers[len(r.headers)-1]
}

type fixture struct {
	profileDir string
	mountedDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	for _, key := range []string{"PLATZ_URL", "PLATZ_API_TOKEN", "PLATZ_USER_TOKEN", "PLATZ_PROFILE"} {
		t.Setenv(key, "")
	}

	return &fixture{profileDir: t.TempDir(), mountedDir: t.TempDir()}
}

func (f *fixture) config() *platz.Config {
	return &platz.Config{
		ProfileDirs:       []string{f.profileDir},
		MountedSecretsDir: f.mountedDir,
	}
}

func (f *fixture) writeProfile(t *testing.T, serverURL, token string) {
	t.Helper()

	dir := filepath.Join(f.profileDir, "platz")
	require.NoError(t, os.MkdirAll(dir, 0o700))

	content := "[profiles.main]\nurl = \"" + serverURL + "\"\ndefault = true\n[profiles.main.user_token]\ntoken = \"" + token + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
}

func (f *fixture) writeMounted(t *testing.T, serverURL, token string, expiresAt time.Time) {
	t.Helper()

	files := map[string]string{
		"access_token": token,
		"server_url":   serverURL,
		"expires_at":   expiresAt.UTC().Format(time.RFC3339),
	}

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(f.mountedDir, name), []byte(content+"\n"), 0o600))
	}
}

func listEnvs(t *testing.T, config *platz.Config) error {
	t.Helper()

	client, err := platzclient.New(context.Background(), config)
	require.NoError(t, err)

	_, err = client.Envs().List(context.Background(), nil)

	return err
}

func TestNew_CredentialPrecedence(t *testing.T) {
	t.Run("env wins over profile and mounted secret", func(t *testing.T) {
		rec := newRecorder(t)
		fix := newFixture(t)
		fix.writeProfile(t, rec.server.URL, "profile-token")
		fix.writeMounted(t, rec.server.URL, "mounted-token", time.Now().Add(time.Hour))

		t.Setenv("PLATZ_URL", rec.server.URL)
		t.Setenv("PLATZ_API_TOKEN", "env-token")

		require.NoError(t, listEnvs(t, fix.config()))
		assert.Equal(t, "platz-token env-token", rec.last())
	})

	t.Run("profile wins over mounted secret", func(t *testing.T) {
		rec := newRecorder(t)
		fix := newFixture(t)
		fix.writeProfile(t, rec.server.URL, "profile-token")
		fix.writeMounted(t, rec.server.URL, "mounted-token", time.Now().Add(time.Hour))

		require.NoError(t, listEnvs(t, fix.config()))
		assert.Equal(t, "platz-token profile-token", rec.last())
	})

	t.Run("mounted secret alone", func(t *testing.T) {
		rec := newRecorder(t)
		fix := newFixture(t)
		fix.writeMounted(t, rec.server.URL, "mounted-token", time.Now().Add(time.Hour))

		require.NoError(t, listEnvs(t, fix.config()))
		assert.Equal(t, "Bearer mounted-token", rec.last())
	})

	t.Run("configured order", func(t *testing.T) {
		rec := newRecorder(t)
		fix := newFixture(t)
		fix.writeProfile(t, rec.server.URL, "profile-token")
		fix.writeMounted(t, rec.server.URL, "mounted-token", time.Now().Add(time.Hour))

		config := fix.config()
		config.CredentialSources = []string{"mounted", "profile"}

		require.NoError(t, listEnvs(t, config))
		assert.Equal(t, "Bearer mounted-token", rec.last())
	})

	t.Run("nothing configured", func(t *testing.T) {
		fix := newFixture(t)

		err := listEnvs(t, fix.config())
		require.ErrorIs(t, err, platz.ErrNoConfigFound)
		assert.Equal(t, platz.KindConfigNotFound, platz.KindOf(err))
	})

	t.Run("malformed env does not fall through", func(t *testing.T) {
		rec := newRecorder(t)
		fix := newFixture(t)
		fix.writeProfile(t, rec.server.URL, "profile-token")

		t.Setenv("PLATZ_URL", "::not-a-url")
		t.Setenv("PLATZ_API_TOKEN", "env-token")

		err := listEnvs(t, fix.config())
		assert.Equal(t, platz.KindMalformedEnv, platz.KindOf(err))
		assert.Empty(t, rec.last())
	})
}

func TestNew_MountedSecretRotation(t *testing.T) {
	rec := newRecorder(t)
	fix := newFixture(t)
	fix.writeMounted(t, rec.server.URL, "stale-token", time.Now().Add(-time.Minute))

	client, err := platzclient.New(context.Background(), fix.config())
	require.NoError(t, err)

	_, err = client.Envs().List(context.Background(), nil)
	require.ErrorIs(t, err, platz.ErrCredentialsExpired)
	assert.Empty(t, rec.last())

	fix.writeMounted(t, rec.server.URL, "rotated-token", time.Now().Add(time.Hour))

	_, err = client.Envs().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer rotated-token", rec.last())
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t)

	client, err := platzclient.NewWithToken(context.Background(), rec.server.URL, "test-token")
	require.NoError(t, err)

	_, err = client.Envs().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", rec.last())

	client, err = platzclient.NewWithAPIToken(context.Background(), rec.server.URL, "api-token")
	require.NoError(t, err)

	_, err = client.Deployments().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "platz-token api-token", rec.last())

	_, err = platzclient.NewWithToken(context.Background(), "platz.example.com", "test-token")
	require.ErrorIs(t, err, platz.ErrInvalidServerURL)
}

func TestNew_NilConfig(t *testing.T) {
	t.Parallel()

	_, err := platzclient.New(context.Background(), nil)
	require.ErrorIs(t, err, platz.ErrConfigRequired)
}
