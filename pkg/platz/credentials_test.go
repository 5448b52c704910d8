package platz_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platzio/platz-go/pkg/platz"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()

	u, err := platz.ParseServerURL(raw)
	require.NoError(t, err)

	return u
}

func TestNewCredentials(t *testing.T) {
	t.Parallel()

	server := mustURL(t, "https://platz.example.com")

	tests := []struct {
		name      string
		serverURL *url.URL
		scheme    platz.AuthScheme
		secret    string
		expected  error
	}{
		{name: "bearer", serverURL: server, scheme: platz.SchemeBearer, secret: "abc"},
		{name: "platz token", serverURL: server, scheme: platz.SchemePlatzToken, secret: "abc"},
		{name: "nil url", serverURL: nil, scheme: platz.SchemeBearer, secret: "abc", expected: platz.ErrNilServerURL},
		{name: "relative url", serverURL: &url.URL{Path: "/api"}, scheme: platz.SchemeBearer, secret: "abc", expected: platz.ErrInvalidServerURL},
		{name: "empty secret", serverURL: server, scheme: platz.SchemeBearer, secret: "", expected: platz.ErrEmptySecret},
		{name: "unknown scheme", serverURL: server, scheme: platz.AuthScheme(9), secret: "abc", expected: platz.ErrUnknownAuthScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			creds, err := platz.NewCredentials("test", tt.serverURL, tt.scheme, tt.secret, nil)
			if tt.expected != nil {
				require.ErrorIs(t, err, tt.expected)
				assert.Nil(t, creds)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "test", creds.Source())
			assert.Equal(t, tt.scheme, creds.Scheme())
			assert.Equal(t, tt.secret, creds.Secret())
		})
	}
}

func TestCredentials_AuthorizationHeader(t *testing.T) {
	t.Parallel()

	server := mustURL(t, "https://platz.example.com")

	bearer, err := platz.NewCredentials("env", server, platz.SchemeBearer, "user-token", nil)
	require.NoError(t, err)

	name, value := bearer.AuthorizationHeader()
	assert.Equal(t, "Authorization", name)
	assert.Equal(t, "Bearer user-token", value)

	token, err := platz.NewCredentials("env", server, platz.SchemePlatzToken, "api-token", nil)
	require.NoError(t, err)

	name, value = token.AuthorizationHeader()
	assert.Equal(t, "x-platz-token", name)
	assert.Equal(t, "api-token", value)
}

func TestCredentials_Expiry(t *testing.T) {
	t.Parallel()

	server := mustURL(t, "https://platz.example.com")
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	forever, err := platz.NewCredentials("profile", server, platz.SchemeBearer, "s", nil)
	require.NoError(t, err)

	_, ok := forever.ExpiresAt()
	assert.False(t, ok)
	assert.False(t, forever.ExpiredAt(now.Add(100*365*24*time.Hour)))

	local := now.In(time.FixedZone("UTC+2", 2*60*60))

	expiring, err := platz.NewCredentials("mounted", server, platz.SchemeBearer, "s", &local)
	require.NoError(t, err)

	expiresAt, ok := expiring.ExpiresAt()
	require.True(t, ok)
	assert.Equal(t, time.UTC, expiresAt.Location())
	assert.True(t, expiresAt.Equal(now))

	assert.False(t, expiring.ExpiredAt(now.Add(-time.Second)))
	assert.True(t, expiring.ExpiredAt(now), "expiry at now counts as expired")
	assert.True(t, expiring.ExpiredAt(now.Add(time.Second)))
}

func TestCredentials_ServerURLIsCopied(t *testing.T) {
	t.Parallel()

	server := mustURL(t, "https://platz.example.com")

	creds, err := platz.NewCredentials("env", server, platz.SchemeBearer, "s", nil)
	require.NoError(t, err)

	server.Host = "evil.example.com"
	assert.Equal(t, "platz.example.com", creds.ServerURL().Host)

	creds.ServerURL().Host = "evil.example.com"
	assert.Equal(t, "platz.example.com", creds.ServerURL().Host)
}

func TestCredentials_StringHidesSecret(t *testing.T) {
	t.Parallel()

	creds, err := platz.NewCredentials("env", mustURL(t, "https://platz.example.com"), platz.SchemeBearer, "super-secret-value", nil)
	require.NoError(t, err)

	assert.NotContains(t, creds.String(), "super-secret-value")
	assert.Contains(t, creds.String(), "platz.example.com")
}

func TestParseServerURL(t *testing.T) {
	t.Parallel()

	u, err := platz.ParseServerURL("  https://platz.example.com/base  ")
	require.NoError(t, err)
	assert.Equal(t, "https://platz.example.com/base", u.String())

	for _, raw := range []string{"", "platz.example.com", "/api/v2", "https://"} {
		_, err := platz.ParseServerURL(raw)
		require.Error(t, err, raw)
	}
}

func TestMaskSecret(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "***", platz.MaskSecret(""))
	assert.Equal(t, "***", platz.MaskSecret("short"))
	assert.Equal(t, "***cdef", platz.MaskSecret("0123456789abcdef"))
}

func TestAuthScheme_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bearer", platz.SchemeBearer.String())
	assert.Equal(t, "platz-token", platz.SchemePlatzToken.String())
	assert.Equal(t, "AuthScheme(7)", platz.AuthScheme(7).String())
}
