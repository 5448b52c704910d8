package platz

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/platzio/platz-go/internal/constants"
)

// AuthScheme selects how a credential secret is presented to the server.
type AuthScheme int

const (
	// SchemeBearer sends "Authorization: Bearer <secret>".
	SchemeBearer AuthScheme = iota
	// SchemePlatzToken sends the secret verbatim in the x-platz-token header.
	SchemePlatzToken
)

// String implements fmt.Stringer.
func (s AuthScheme) String() string {
	switch s {
	case SchemeBearer:
		return "bearer"
	case SchemePlatzToken:
		return "platz-token"
	default:
		return fmt.Sprintf("AuthScheme(%d)", int(s))
	}
}

// Static errors for err113 compliance.
var (
	// ErrSourceNotApplicable is returned by a Resolver whose inputs are entirely
	// absent. The resolver chain moves on to the next source; every other error
	// aborts resolution.
	ErrSourceNotApplicable = errors.New("credential source not applicable")

	ErrEmptySecret       = errors.New("credential secret is empty")
	ErrInvalidServerURL  = errors.New("server URL must be absolute with a host")
	ErrUnknownAuthScheme = errors.New("unknown auth scheme")
	ErrNilServerURL      = errors.New("server URL is required")
)

// Resolver attempts to produce Credentials from a single origin.
//
// Resolve returns exactly one of: credentials and a nil error (found),
// ErrSourceNotApplicable (inputs absent), or any other error (inputs present
// but malformed). Implementations hold no state between calls.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context) (*Credentials, error)
}

// Credentials is an immutable resolved credential record.
type Credentials struct {
	serverURL *url.URL
	scheme    AuthScheme
	secret    string
	expiresAt *time.Time
	source    string
}

// NewCredentials validates and builds a credential record. expiresAt may be nil
// for credentials that never expire.
func NewCredentials(source string, serverURL *url.URL, scheme AuthScheme, secret string, expiresAt *time.Time) (*Credentials, error) {
	if serverURL == nil {
		return nil, ErrNilServerURL
	}

	if serverURL.Scheme == "" || serverURL.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidServerURL, serverURL.String())
	}

	if secret == "" {
		return nil, ErrEmptySecret
	}

	if scheme != SchemeBearer && scheme != SchemePlatzToken {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAuthScheme, int(scheme))
	}

	u := *serverURL

	var expiry *time.Time

	if expiresAt != nil {
		t := expiresAt.UTC()
		expiry = &t
	}

	return &Credentials{
		serverURL: &u,
		scheme:    scheme,
		secret:    secret,
		expiresAt: expiry,
		source:    source,
	}, nil
}

// ParseServerURL parses an absolute server base URL.
func ParseServerURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing server URL: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidServerURL, raw)
	}

	return u, nil
}

// ServerURL returns a copy of the server base URL.
func (c *Credentials) ServerURL() *url.URL {
	u := *c.serverURL

	return &u
}

// Scheme returns the auth scheme.
func (c *Credentials) Scheme() AuthScheme {
	return c.scheme
}

// Secret returns the raw secret material.
func (c *Credentials) Secret() string {
	return c.secret
}

// Source returns the name of the resolver that produced the record.
func (c *Credentials) Source() string {
	return c.source
}

// ExpiresAt returns the expiry timestamp, if any.
func (c *Credentials) ExpiresAt() (time.Time, bool) {
	if c.expiresAt == nil {
		return time.Time{}, false
	}

	return *c.expiresAt, true
}

// ExpiredAt reports whether the record has an expiry at or before now.
func (c *Credentials) ExpiredAt(now time.Time) bool {
	if c.expiresAt == nil {
		return false
	}

	return !c.expiresAt.After(now)
}

// AuthorizationHeader renders the record into a header name and value.
func (c *Credentials) AuthorizationHeader() (string, string) {
	if c.scheme == SchemePlatzToken {
		return constants.HeaderPlatzToken, c.secret
	}

	return constants.HeaderAuthorization, constants.BearerPrefix + c.secret
}

// String never includes the secret.
func (c *Credentials) String() string {
	return fmt.Sprintf("%s credentials for %s from %s", c.scheme, c.serverURL, c.source)
}

// MaskSecret hides all but the last few characters of a secret.
func MaskSecret(secret string) string {
	if len(secret) < constants.MinimumSecretLengthForHint {
		return constants.MaskedSecret
	}

	return constants.MaskedSecret + secret[len(secret)-constants.MaskVisibleChars:]
}
