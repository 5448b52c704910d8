package auth

import (
	"context"
	"errors"
	"net/url"
	"os"
	"unicode/utf8"

	"github.com/platzio/platz-go/internal/constants"
	"github.com/platzio/platz-go/pkg/platz"
)

// Static errors for err113 compliance.
var (
	ErrInvalidUTF8 = errors.New("value is not valid UTF-8")
)

// EnvResolver reads credentials from PLATZ_URL and a token variable.
type EnvResolver struct {
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// NewEnvResolver creates a resolver backed by the process environment.
func NewEnvResolver() *EnvResolver {
	return &EnvResolver{LookupEnv: os.LookupEnv}
}

// Name returns the source name.
func (r *EnvResolver) Name() string {
	return constants.SourceEnv
}

// Resolve implements platz.Resolver.
func (r *EnvResolver) Resolve(_ context.Context) (*platz.Credentials, error) {
	rawURL, hasURL := r.lookup(constants.EnvServerURL)

	tokenVar, scheme := constants.EnvAPIToken, platz.SchemePlatzToken

	token, hasToken := r.lookup(constants.EnvAPIToken)
	if !hasToken {
		tokenVar, scheme = constants.EnvUserToken, platz.SchemeBearer
		token, hasToken = r.lookup(constants.EnvUserToken)
	}

	// Present values are validated before the absence check so a malformed
	// variable never falls through to later sources.
	var serverURL *url.URL

	if hasURL {
		parsed, err := platz.ParseServerURL(rawURL)
		if err != nil {
			return nil, &platz.EnvVarError{Name: constants.EnvServerURL, Err: err}
		}

		serverURL = parsed
	}

	if hasToken && !utf8.ValidString(token) {
		return nil, &platz.EnvVarError{Name: tokenVar, Err: ErrInvalidUTF8}
	}

	if !hasURL || !hasToken {
		return nil, platz.ErrSourceNotApplicable
	}

	creds, err := platz.NewCredentials(r.Name(), serverURL, scheme, token, nil)
	if err != nil {
		return nil, &platz.EnvVarError{Name: tokenVar, Err: err}
	}

	return creds, nil
}

func (r *EnvResolver) lookup(key string) (string, bool) {
	lookupEnv := r.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	value, ok := lookupEnv(key)
	if !ok || value == "" {
		return "", false
	}

	return value, true
}
