package platz_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platzio/platz-go/pkg/platz"
)

var errUnderlying = errors.New("underlying")

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected platz.ErrorKind
	}{
		{name: "nil", err: nil, expected: platz.KindUnknown},
		{name: "unrelated", err: errUnderlying, expected: platz.KindUnknown},
		{name: "no config", err: fmt.Errorf("%w (tried [env])", platz.ErrNoConfigFound), expected: platz.KindConfigNotFound},
		{name: "env", err: &platz.EnvVarError{Name: "PLATZ_URL", Err: errUnderlying}, expected: platz.KindMalformedEnv},
		{name: "mounted", err: &platz.MountedSecretError{Path: "/x", Err: errUnderlying}, expected: platz.KindMalformedMountedSecret},
		{name: "profile", err: &platz.ProfileError{Path: "/x", Err: errUnderlying}, expected: platz.KindMalformedProfile},
		{name: "expired", err: platz.ErrCredentialsExpired, expected: platz.KindCredentialsExpired},
		{name: "url join", err: &platz.URLJoinError{Path: "%zz", Err: errUnderlying}, expected: platz.KindURLJoin},
		{name: "transport", err: &platz.TransportError{Method: "GET", URL: "u", Err: errUnderlying}, expected: platz.KindTransport},
		{name: "http", err: &platz.HTTPError{StatusCode: http.StatusTeapot}, expected: platz.KindHTTPStatus},
		{name: "decode", err: &platz.DecodeError{Target: "T", Err: errUnderlying}, expected: platz.KindDecode},
		{name: "zero", err: platz.ErrExpectedOneGotNone, expected: platz.KindZeroResults},
		{name: "many", err: &platz.ExpectedOneGotManyError{Count: 2}, expected: platz.KindMultipleResults},
		{name: "stalled", err: platz.ErrPaginationStalled, expected: platz.KindPagination},
		{name: "wrapped", err: fmt.Errorf("resolving env credentials: %w", &platz.EnvVarError{Name: "PLATZ_URL", Err: errUnderlying}), expected: platz.KindMalformedEnv},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, platz.KindOf(tt.err))
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "transport", platz.KindTransport.String())
	assert.Equal(t, "multiple-results", platz.KindMultipleResults.String())
	assert.Equal(t, "ErrorKind(99)", platz.ErrorKind(99).String())
}

func TestHTTPErrorHelpers(t *testing.T) {
	t.Parallel()

	notFound := fmt.Errorf("getting user: %w", &platz.HTTPError{Method: "GET", URL: "u", StatusCode: http.StatusNotFound})

	assert.Equal(t, http.StatusNotFound, platz.StatusCode(notFound))
	assert.True(t, platz.IsNotFound(notFound))
	assert.False(t, platz.IsUnauthorized(notFound))
	assert.True(t, platz.IsUnauthorized(&platz.HTTPError{StatusCode: http.StatusUnauthorized}))
	assert.True(t, platz.IsForbidden(&platz.HTTPError{StatusCode: http.StatusForbidden}))
	assert.Equal(t, 0, platz.StatusCode(errUnderlying))
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	withBody := &platz.HTTPError{Method: "GET", URL: "https://p/api", StatusCode: 500, Body: "boom"}
	assert.Equal(t, `GET https://p/api: 500 Internal Server Error: "boom"`, withBody.Error())

	noBody := &platz.HTTPError{Method: "GET", URL: "https://p/api", StatusCode: 502}
	assert.Equal(t, "GET https://p/api: 502 Bad Gateway", noBody.Error())

	profile := &platz.ProfileError{Path: "/c.toml", Profile: "prod", Err: errUnderlying}
	assert.Equal(t, `error in profile "prod" of /c.toml: underlying`, profile.Error())
	assert.ErrorIs(t, profile, errUnderlying)

	env := &platz.EnvVarError{Name: "PLATZ_URL", Err: errUnderlying}
	assert.ErrorIs(t, env, errUnderlying)
	assert.Contains(t, env.Error(), "PLATZ_URL")
}
