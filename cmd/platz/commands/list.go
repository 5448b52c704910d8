package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platzio/platz-go/pkg/platz"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var (
		queryPairs []string
		exactlyOne bool
	)

	cmd := &cobra.Command{
		Use:   "list PATH",
		Short: "Collect every item of a paginated endpoint",
		Long: `Fetch every page of a paginated list endpoint and print the combined items.

With --one the command fails unless exactly one item matches.`,
		Example: `  platz list deployments --query enabled=true
  platz list users --query email=jane@example.com --one`,
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

			path := apiPath(args[0])

			if exactlyOne {
				item, err := platz.CollectExactlyOne[json.RawMessage](cmd.Context(), client.Requester(), path, query)
				if err != nil {
					return fmt.Errorf("failed to find one item in %s: %w", args[0], err)
				}

				return renderRaw(cmd.OutOrStdout(), item)
			}

			items, err := platz.CollectAll[json.RawMessage](cmd.Context(), client.Requester(), path, query)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", args[0], err)
			}

			raw, err := json.Marshal(items)
			if err != nil {
				return fmt.Errorf("failed to encode items: %w", err)
			}

			return renderRaw(cmd.OutOrStdout(), raw)
		},
	}

	cmd.Flags().StringArrayVarP(&queryPairs, "query", "q", nil, "query parameter as KEY=VALUE (repeatable)")
	cmd.Flags().BoolVar(&exactlyOne, "one", false, "require exactly one matching item")

	return cmd
}
