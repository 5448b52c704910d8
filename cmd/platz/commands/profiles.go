package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/platzio/platz-go/internal/auth"
	"github.com/platzio/platz-go/pkg/platz"
)

const (
	profileTypeBearer    = "bearer"
	profileTypeUserToken = "user-token"
)

// ProfileInfo is the displayable view of a profile. Tokens are masked.
type ProfileInfo struct {
	Name      string `json:"name"                 yaml:"name"`
	URL       string `json:"url"                  yaml:"url"`
	Type      string `json:"type"                 yaml:"type"`
	Default   bool   `json:"default"              yaml:"default"`
	Token     string `json:"token"                yaml:"token"`
	ExpiresAt string `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

func newProfileInfo(name string, profile *auth.Profile) ProfileInfo {
	info := ProfileInfo{
		Name:    name,
		URL:     profile.URL,
		Default: profile.Default,
	}

	if profile.UserToken != nil {
		info.Type = profileTypeUserToken
		info.Token = platz.MaskSecret(profile.UserToken.Token)

		return info
	}

	info.Type = profileTypeBearer
	info.Token = platz.MaskSecret(profile.Bearer.Token)

	if profile.Bearer.ExpiresAt != nil {
		info.ExpiresAt = profile.Bearer.ExpiresAt.UTC().Format(time.RFC3339)
	}

	return info
}

// NewProfilesCommand creates the profiles command group.
func NewProfilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "Manage credential profiles",
		Long:    "List, add, select, and remove profiles in the platz profile file",
	}

	cmd.AddCommand(newProfilesListCommand())
	cmd.AddCommand(newProfilesAddCommand())
	cmd.AddCommand(newProfilesUseCommand())
	cmd.AddCommand(newProfilesRemoveCommand())

	return cmd
}

// profileFileForWrite returns the existing profile file, or the path under the
// first config root when none exists yet.
func profileFileForWrite() (string, error) {
	dirs := profileDirs()
	if len(dirs) == 0 {
		return "", auth.ErrNoProfileDirs
	}

	path, err := auth.FindProfileFile(dirs)
	if errors.Is(err, platz.ErrSourceNotApplicable) {
		return auth.ProfileFilePath(dirs[0]), nil
	}

	return path, err
}

// existingProfileFile returns the profile file path, failing when none exists.
func existingProfileFile() (string, error) {
	path, err := auth.FindProfileFile(profileDirs())
	if errors.Is(err, platz.ErrSourceNotApplicable) {
		return "", ErrNoProfileFile
	}

	return path, err
}

func newProfilesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles := []ProfileInfo{}

			path, err := auth.FindProfileFile(profileDirs())

			switch {
			case errors.Is(err, platz.ErrSourceNotApplicable):
			case err != nil:
				return err
			default:
				file, err := auth.LoadProfileFile(path)
				if err != nil {
					return fmt.Errorf("failed to load profiles: %w", err)
				}

				for _, name := range file.Names() {
					profiles = append(profiles, newProfileInfo(name, file.Profiles[name]))
				}
			}

			return render(cmd.OutOrStdout(), profiles, func(table *tablewriter.Table) {
				table.Header("Name", "URL", "Type", "Default", "Token")

				for _, p := range profiles {
					marker := ""
					if p.Default {
						marker = "*"
					}

					_ = table.Append(p.Name, p.URL, p.Type, marker, p.Token)
				}
			})
		},
	}
}

func newProfilesAddCommand() *cobra.Command {
	var (
		serverURL  string
		token      string
		userToken  bool
		expiresAt  string
		setDefault bool
		overwrite  bool
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a profile",
		Long: `Add a profile to the profile file.

The token is read from --token, or prompted for when omitted. By default the
token is a bearer token; --user-token stores it as a user API token sent in the
x-platz-token header. The first profile added becomes the default.`,
		Example: `  platz profiles add prod --url https://platz.example.com --user-token
  platz profiles add staging --url https://staging.platz.example.com --token "$TOKEN" --expires-at 2026-12-31T00:00:00Z`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if serverURL == "" {
				return ErrURLRequired
			}

			_, err := platz.ParseServerURL(serverURL)
			if err != nil {
				return err
			}

			if userToken && expiresAt != "" {
				return ErrExpiryWithUserToken
			}

			profile := &auth.Profile{URL: serverURL}

			if token == "" {
				token, err = promptToken(cmd)
				if err != nil {
					return err
				}
			}

			if userToken {
				profile.UserToken = &auth.UserTokenSecret{Token: token}
			} else {
				profile.Bearer = &auth.BearerSecret{Token: token}

				if expiresAt != "" {
					t, err := time.Parse(time.RFC3339, expiresAt)
					if err != nil {
						return fmt.Errorf("invalid --expires-at: %w", err)
					}

					profile.Bearer.ExpiresAt = &t
				}
			}

			path, err := profileFileForWrite()
			if err != nil {
				return err
			}

			err = auth.UpdateProfileFile(cmd.Context(), path, func(file *auth.ProfileFile) error {
				if _, exists := file.Profiles[name]; exists && !overwrite {
					return fmt.Errorf("%w: %s", ErrProfileExists, name)
				}

				first := len(file.Profiles) == 0
				file.Profiles[name] = profile

				if first || setDefault {
					return file.SetDefault(name)
				}

				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to add profile: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Profile %q saved to %s\n", name, path)

			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "url", "", "Platz server URL")
	cmd.Flags().StringVar(&token, "token", "", "token (prompted when omitted)")
	cmd.Flags().BoolVar(&userToken, "user-token", false, "store the token as a user API token")
	cmd.Flags().StringVar(&expiresAt, "expires-at", "", "bearer token expiry (RFC3339)")
	cmd.Flags().BoolVar(&setDefault, "default", false, "make this the default profile")
	cmd.Flags().BoolVar(&overwrite, "force", false, "replace an existing profile with the same name")

	return cmd
}

// promptToken reads a token without echo when stdin is a terminal, otherwise
// reads the first line of input.
func promptToken(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Token: ")

		raw, err := term.ReadPassword(int(f.Fd()))

		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		return requireToken(string(raw))
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return requireToken(line)
}

func requireToken(raw string) (string, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return "", ErrTokenRequired
	}

	return token, nil
}

func newProfilesUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use NAME",
		Short: "Make a profile the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := existingProfileFile()
			if err != nil {
				return err
			}

			err = auth.UpdateProfileFile(cmd.Context(), path, func(file *auth.ProfileFile) error {
				return file.SetDefault(args[0])
			})
			if err != nil {
				return fmt.Errorf("failed to set default profile: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Default profile is now %q\n", args[0])

			return nil
		},
	}
}

func newProfilesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a profile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			path, err := existingProfileFile()
			if err != nil {
				return err
			}

			err = auth.UpdateProfileFile(cmd.Context(), path, func(file *auth.ProfileFile) error {
				if _, ok := file.Profiles[name]; !ok {
					return fmt.Errorf("%w: %s", auth.ErrProfileNotFound, name)
				}

				delete(file.Profiles, name)

				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to remove profile: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Profile %q removed\n", name)

			return nil
		},
	}
}
