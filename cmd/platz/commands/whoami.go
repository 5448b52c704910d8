package commands

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/platzio/platz-go/internal/constants"
	"github.com/platzio/platz-go/pkg/platz"
)

// CredentialInfo is the displayable view of resolved credentials.
type CredentialInfo struct {
	Source    string `json:"source"               yaml:"source"`
	Server    string `json:"server"               yaml:"server"`
	Scheme    string `json:"scheme"               yaml:"scheme"`
	ExpiresAt string `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	Secret    string `json:"secret"               yaml:"secret"`
}

func newCredentialInfo(creds *platz.Credentials) CredentialInfo {
	info := CredentialInfo{
		Source: creds.Source(),
		Server: creds.ServerURL().String(),
		Scheme: creds.Scheme().String(),
		Secret: platz.MaskSecret(creds.Secret()),
	}

	if expiresAt, ok := creds.ExpiresAt(); ok {
		info.ExpiresAt = expiresAt.Format(time.RFC3339)
	}

	return info
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the credentials in use",
		Long:  "Resolve credentials through the configured sources and show where they came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			creds, err := client.Credentials(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to resolve credentials: %w", err)
			}

			info := newCredentialInfo(creds)

			return render(cmd.OutOrStdout(), info, func(table *tablewriter.Table) {
				expires := info.ExpiresAt
				if expires == "" {
					expires = constants.NotAvailable
				}

				table.Header("Property", "Value")
				_ = table.Append("Source", info.Source)
				_ = table.Append("Server", info.Server)
				_ = table.Append("Scheme", info.Scheme)
				_ = table.Append("Expires", expires)
				_ = table.Append("Secret", info.Secret)
			})
		},
	}
}
