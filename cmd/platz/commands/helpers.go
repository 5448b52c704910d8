package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/platzio/platz-go/internal/auth"
	"github.com/platzio/platz-go/internal/constants"
	"github.com/platzio/platz-go/internal/logging"
	"github.com/platzio/platz-go/pkg/platz"
	"github.com/platzio/platz-go/pkg/platzclient"
)

const defaultJSONIndent = 2

// Static errors for the commands package.
var (
	ErrInvalidQueryParam   = errors.New("query parameter must be KEY=VALUE")
	ErrUnknownOutput       = errors.New("unknown output format")
	ErrTokenRequired       = errors.New("a token is required")
	ErrNoProfileFile       = errors.New("no profile file found")
	ErrProfileExists       = errors.New("profile already exists")
	ErrInvalidBoolFlag     = errors.New("invalid boolean value")
	ErrURLRequired         = errors.New("--url is required")
	ErrExpiryWithUserToken = errors.New("--expires-at does not apply to user tokens")
)

// outputFormat returns the validated --output value.
func outputFormat() (string, error) {
	format := viper.GetString("output")

	switch format {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOutput, format)
	}
}

// render writes v as JSON or YAML, or calls table with a fresh table writer.
func render(w io.Writer, v interface{}, table func(*tablewriter.Table)) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		return encoder.Encode(v)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(v)
	default:
		t := tablewriter.NewWriter(w)
		table(t)

		err := t.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// renderRaw writes a raw JSON document. Table output falls back to indented JSON.
func renderRaw(w io.Writer, raw json.RawMessage) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	var v interface{}

	err = json.Unmarshal(raw, &v)
	if err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if format == constants.FormatYAML {
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(v)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

	return encoder.Encode(v)
}

// clientConfig builds the library configuration from global flags.
func clientConfig() (*platz.Config, error) {
	verbose := viper.GetBool("verbose")

	logger, err := logging.NewCLI(verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	dirs := profileDirs()
	if len(dirs) == 0 {
		return nil, auth.ErrNoProfileDirs
	}

	config := &platz.Config{
		Profile:     viper.GetString("profile"),
		ProfileDirs: dirs,
		PageSize:    viper.GetInt("page-size"),
		Debug:       verbose,
		Logger:      logger,
	}

	// An explicit profile must not be shadowed by environment credentials.
	if config.Profile != "" {
		config.CredentialSources = []string{constants.SourceProfile}
	}

	return config, nil
}

func newClient(cmd *cobra.Command) (platz.Client, error) {
	config, err := clientConfig()
	if err != nil {
		return nil, err
	}

	c, err := platzclient.New(cmd.Context(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return c, nil
}

// apiPath expands a bare resource path such as "deployments" to /api/v2/deployments.
func apiPath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}

	return constants.APIPrefix + "/" + path
}

// parseQuery turns repeated KEY=VALUE flags into query parameters.
func parseQuery(pairs []string) (*platz.QueryParams, error) {
	query := platz.NewQueryParams()

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidQueryParam, pair)
		}

		query.Set(key, value)
	}

	return query, nil
}

// stringFlag returns the flag value only when the user set it.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	value, _ := cmd.Flags().GetString(name)

	return &value
}

// boolFlag parses a tri-state boolean flag given as a string.
func boolFlag(cmd *cobra.Command, name string) (*bool, error) {
	raw := stringFlag(cmd, name)
	if raw == nil {
		return nil, nil
	}

	value, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w for --%s: %q", ErrInvalidBoolFlag, name, *raw)
	}

	return &value, nil
}

func formatBool(b bool) string {
	if b {
		return constants.BooleanTrue
	}

	return constants.BooleanFalse
}

func formatOptional(s *string) string {
	if s == nil || *s == "" {
		return constants.NotAvailable
	}

	return *s
}
