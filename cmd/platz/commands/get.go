package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platzio/platz-go/pkg/platz"
)

// NewGetCommand creates the get command.
func NewGetCommand() *cobra.Command {
	var queryPairs []string

	cmd := &cobra.Command{
		Use:   "get PATH",
		Short: "Perform an authenticated GET request",
		Long: `Perform a single authenticated GET request and print the JSON response.

PATH is either absolute (/api/v2/deployments/ID) or relative to /api/v2 (deployments/ID).`,
		Example: `  platz get deployments/3f1c0e0e-8a53-4a8e-9a7b-0c8c3f2a4e11
  platz get /api/v2/envs --query name=prod`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseQuery(queryPairs)
			if err != nil {
				return err
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			body, err := platz.Get[json.RawMessage](cmd.Context(), client.Requester(), apiPath(args[0]), query)
			if err != nil {
				return fmt.Errorf("failed to get %s: %w", args[0], err)
			}

			return renderRaw(cmd.OutOrStdout(), body)
		},
	}

	cmd.Flags().StringArrayVarP(&queryPairs, "query", "q", nil, "query parameter as KEY=VALUE (repeatable)")

	return cmd
}
