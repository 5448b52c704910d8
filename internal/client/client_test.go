package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platzio/platz-go/internal/client"
	"github.com/platzio/platz-go/pkg/platz"
)

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := client.New(nil)
	require.ErrorIs(t, err, platz.ErrConfigRequired)

	_, err = client.New(&platz.Config{CredentialSources: []string{"keychain"}})
	require.ErrorIs(t, err, platz.ErrUnknownSource)

	c, err := client.New(&platz.Config{
		CredentialSources: []string{"mounted"},
		MountedSecretsDir: t.TempDir(),
	})
	require.NoError(t, err)

	_, err = c.Credentials(context.Background())
	require.ErrorIs(t, err, platz.ErrNoConfigFound)
}

func TestClient_ConfigWiring(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "platz-test/1.0", request.Header.Get("User-Agent"))
		assert.Equal(t, "team-a", request.Header.Get("X-Team"))
		assert.Equal(t, "25", request.URL.Query().Get("page_size"))
		servePages(t, writer, request, []platz.Env{}, 25)
	}))
	defer server.Close()

	registry := prometheus.NewRegistry()

	c := newTestClient(t, server, &platz.Config{
		UserAgent:         "platz-test/1.0",
		Headers:           map[string]string{"X-Team": "team-a"},
		PageSize:          25,
		MetricsRegisterer: registry,
	})

	envs, err := c.Envs().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, envs)

	count, err := testutil.GatherAndCount(registry, "platz_client_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

type messageLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *messageLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, msg)
}

func (l *messageLogger) Debug(msg string, _ map[string]interface{}) { l.record(msg) }

func (l *messageLogger) Info(msg string, _ map[string]interface{}) { l.record(msg) }

func (l *messageLogger) Warn(msg string, _ map[string]interface{}) { l.record(msg) }

func (l *messageLogger) Error(msg string, _ map[string]interface{}) { l.record(msg) }

func TestClient_LoggerWiring(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		servePages(t, writer, request, []platz.Env{}, 10)
	}))
	defer server.Close()

	logger := &messageLogger{}

	c := newTestClient(t, server, &platz.Config{Logger: logger})

	_, err := c.Envs().List(context.Background(), nil)
	require.NoError(t, err)

	logger.mu.Lock()
	defer logger.mu.Unlock()

	assert.Contains(t, logger.messages, "API Request")
	assert.Contains(t, logger.messages, "API Response")
}

func TestClient_Credentials(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer server.Close()

	c := newTestClient(t, server, nil)

	creds, err := c.Credentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static", creds.Source())
	assert.Equal(t, server.URL, creds.ServerURL().String())

	c.InvalidateCredentials()

	creds, err = c.Credentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testToken, creds.Secret())

	var _ platz.Client = c
}
