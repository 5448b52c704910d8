package commands

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/platzio/platz-go/pkg/platz"
)

// NewEnvsCommand creates the envs command group.
func NewEnvsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "envs",
		Aliases: []string{"env"},
		Short:   "Manage envs",
		Long:    "List Platz environments",
	}

	cmd.AddCommand(newEnvsListCommand())

	return cmd
}

func newEnvsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List envs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			autoAdd, err := boolFlag(cmd, "auto-add-new-users")
			if err != nil {
				return err
			}

			filters := &platz.EnvFilters{
				Name:            stringFlag(cmd, "name"),
				AutoAddNewUsers: autoAdd,
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			envs, err := client.Envs().List(cmd.Context(), filters)
			if err != nil {
				return fmt.Errorf("failed to list envs: %w", err)
			}

			return render(cmd.OutOrStdout(), envs, func(table *tablewriter.Table) {
				table.Header("ID", "Name", "Auto Add Users", "Created")

				for _, env := range envs {
					_ = table.Append(
						env.ID.String(),
						env.Name,
						formatBool(env.AutoAddNewUsers),
						env.CreatedAt.Format(time.RFC3339),
					)
				}
			})
		},
	}

	cmd.Flags().String("name", "", "filter by env name")
	cmd.Flags().String("auto-add-new-users", "", "filter by auto-add-new-users (true/false)")

	return cmd
}
