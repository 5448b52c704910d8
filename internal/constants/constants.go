package constants

import "time"

// Version is the library version reported in the User-Agent header.
const Version = "0.4.0"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Environment variables read by the environment credential source.
const (
	// EnvServerURL holds the Platz server base URL.
	EnvServerURL = "PLATZ_URL"

	// EnvAPIToken holds an API token sent in the x-platz-token header.
	EnvAPIToken = "PLATZ_API_TOKEN"

	// EnvUserToken holds a user token sent as a bearer token.
	EnvUserToken = "PLATZ_USER_TOKEN"

	// EnvProfile selects a named profile from the profile file.
	EnvProfile = "PLATZ_PROFILE"
)

// Mounted secret layout. The deployment platform rotates these files in place.
const (
	// MountedSecretsDir is the directory the platz-creds secret is mounted at.
	MountedSecretsDir = "/var/run/secrets/platz"

	// MountedAccessTokenFile holds the bearer access token.
	MountedAccessTokenFile = "access_token"

	// MountedServerURLFile holds the server base URL.
	MountedServerURLFile = "server_url"

	// MountedExpiresAtFile holds the RFC3339 expiry timestamp of the access token.
	MountedExpiresAtFile = "expires_at"
)

// Profile file layout.
const (
	// ConfigDirName is the directory under a config root holding platz files.
	ConfigDirName = "platz"

	// ProfileFileName is the profile file name inside ConfigDirName.
	ProfileFileName = "config.toml"

	// CLIConfigFileName is the CLI settings file name (without extension) inside ConfigDirName.
	CLIConfigFileName = "cli"

	// ProfileLockTimeout bounds how long profile writers wait for the file lock.
	ProfileLockTimeout = 5 * time.Second

	// ProfileLockRetryDelay is the polling interval while waiting for the file lock.
	ProfileLockRetryDelay = 100 * time.Millisecond
)

// Credential source names, in the default precedence order.
const (
	SourceEnv     = "env"
	SourceProfile = "profile"
	SourceMounted = "mounted"
	SourceStatic  = "static"
)

// HTTP headers.
const (
	// HeaderAuthorization carries bearer credentials.
	HeaderAuthorization = "Authorization"

	// HeaderPlatzToken carries API tokens verbatim.
	HeaderPlatzToken = "x-platz-token"

	// BearerPrefix prefixes bearer secrets in the Authorization header.
	BearerPrefix = "Bearer "

	// ContentTypeJSON is the media type for request and response bodies.
	ContentTypeJSON = "application/json"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// Pagination query keys.
const (
	// QueryPage selects the 1-based page number.
	QueryPage = "page"

	// QueryPageSize requests a page size from the server.
	QueryPageSize = "page_size"
)

// API paths.
const (
	APIPrefix = "/api/v2"
)

// UI and display constants.
const (
	// NotAvailable is shown for missing values.
	NotAvailable = "N/A"

	// MaskedSecret replaces secrets in output.
	MaskedSecret = "***"

	// MaskVisibleChars is how many trailing characters of a secret stay visible.
	MaskVisibleChars = 4

	// MinimumSecretLengthForHint is the shortest secret that keeps a visible suffix.
	MinimumSecretLengthForHint = 12
)

// Format constants.
const (
	// FormatJSON represents JSON output format.
	FormatJSON = "json"

	// FormatYAML represents YAML output format.
	FormatYAML = "yaml"

	// FormatTable represents table output format.
	FormatTable = "table"
)

// Boolean string constants.
const (
	// BooleanTrue represents the string "true".
	BooleanTrue = "true"

	// BooleanFalse represents the string "false".
	BooleanFalse = "false"
)
