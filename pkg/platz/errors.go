package platz

import (
	"errors"
	"fmt"
	"net/http"
)

// Common static errors that can be wrapped with context.
var (
	ErrNoConfigFound      = errors.New("could not find any Platz config")
	ErrCredentialsExpired = errors.New("resolved credentials are already expired")
	ErrExpectedOneGotNone = errors.New("expected exactly one result, got none")
	ErrInvalidPageSize    = errors.New("server reported a non-positive page size")
	ErrPaginationStalled  = errors.New("server did not advance to the requested page")
	ErrConfigRequired     = errors.New("config is required")
	ErrUnknownSource      = errors.New("unknown credential source")
)

// EnvVarError reports an environment variable that is set but unusable.
type EnvVarError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *EnvVarError) Error() string {
	return fmt.Sprintf("error parsing %s environment variable: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *EnvVarError) Unwrap() error {
	return e.Err
}

// MountedSecretError reports a mounted secret file that exists but cannot be
// read or parsed.
type MountedSecretError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *MountedSecretError) Error() string {
	return fmt.Sprintf("error reading mounted secret %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *MountedSecretError) Unwrap() error {
	return e.Err
}

// ProfileError reports a profile file that cannot be used. Profile is empty
// when the problem is not tied to a single profile.
type ProfileError struct {
	Path    string
	Profile string
	Err     error
}

// Error implements the error interface.
func (e *ProfileError) Error() string {
	if e.Profile == "" {
		return fmt.Sprintf("error in profile file %s: %v", e.Path, e.Err)
	}

	return fmt.Sprintf("error in profile %q of %s: %v", e.Profile, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProfileError) Unwrap() error {
	return e.Err
}

// URLJoinError reports a request path that cannot be joined to the server URL.
type URLJoinError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *URLJoinError) Error() string {
	return fmt.Sprintf("error joining URL path %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *URLJoinError) Unwrap() error {
	return e.Err
}

// TransportError reports a request that could not be built or sent.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("error sending %s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPError reports a non-2xx response. Body is best effort and may be empty.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	status := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body == "" {
		return fmt.Sprintf("%s %s: %s", e.Method, e.URL, status)
	}

	return fmt.Sprintf("%s %s: %s: %q", e.Method, e.URL, status, e.Body)
}

// DecodeError reports a success body that does not match the expected shape.
type DecodeError struct {
	Target string
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("error decoding response into %s: %v", e.Target, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ExpectedOneGotManyError reports more than one result where exactly one was required.
type ExpectedOneGotManyError struct {
	Count int
}

// Error implements the error interface.
func (e *ExpectedOneGotManyError) Error() string {
	return fmt.Sprintf("expected exactly one result, got %d", e.Count)
}

// ErrorKind tags the failure classes a pipeline call can end in.
type ErrorKind int

// Error kinds.
const (
	KindUnknown ErrorKind = iota
	KindConfigNotFound
	KindMalformedEnv
	KindMalformedMountedSecret
	KindMalformedProfile
	KindCredentialsExpired
	KindURLJoin
	KindTransport
	KindHTTPStatus
	KindDecode
	KindZeroResults
	KindMultipleResults
	KindPagination
)

var kindNames = map[ErrorKind]string{
	KindUnknown:                "unknown",
	KindConfigNotFound:         "config-not-found",
	KindMalformedEnv:           "malformed-env",
	KindMalformedMountedSecret: "malformed-mounted-secret",
	KindMalformedProfile:       "malformed-profile",
	KindCredentialsExpired:     "credentials-expired",
	KindURLJoin:                "url-join",
	KindTransport:              "transport",
	KindHTTPStatus:             "http-status",
	KindDecode:                 "decode",
	KindZeroResults:            "zero-results",
	KindMultipleResults:        "multiple-results",
	KindPagination:             "pagination",
}

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// KindOf classifies err by the first recognised error in its chain.
func KindOf(err error) ErrorKind {
	var (
		envErr     *EnvVarError
		mountedErr *MountedSecretError
		profileErr *ProfileError
		joinErr    *URLJoinError
		transErr   *TransportError
		httpErr    *HTTPError
		decodeErr  *DecodeError
		manyErr    *ExpectedOneGotManyError
	)

	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrNoConfigFound):
		return KindConfigNotFound
	case errors.As(err, &envErr):
		return KindMalformedEnv
	case errors.As(err, &mountedErr):
		return KindMalformedMountedSecret
	case errors.As(err, &profileErr):
		return KindMalformedProfile
	case errors.Is(err, ErrCredentialsExpired):
		return KindCredentialsExpired
	case errors.As(err, &joinErr):
		return KindURLJoin
	case errors.As(err, &transErr):
		return KindTransport
	case errors.As(err, &httpErr):
		return KindHTTPStatus
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.Is(err, ErrExpectedOneGotNone):
		return KindZeroResults
	case errors.As(err, &manyErr):
		return KindMultipleResults
	case errors.Is(err, ErrInvalidPageSize), errors.Is(err, ErrPaginationStalled):
		return KindPagination
	default:
		return KindUnknown
	}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a 403 response.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}
