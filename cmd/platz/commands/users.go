package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/platzio/platz-go/pkg/platz"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "List and inspect Platz users",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := boolFlag(cmd, "active")
			if err != nil {
				return err
			}

			filters := &platz.UserFilters{
				DisplayName: stringFlag(cmd, "display-name"),
				Email:       stringFlag(cmd, "email"),
				IsActive:    active,
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			users, err := client.Users().List(cmd.Context(), filters)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			return render(cmd.OutOrStdout(), users, func(table *tablewriter.Table) {
				table.Header("ID", "Name", "Email", "Admin", "Active", "Created")

				for _, user := range users {
					_ = table.Append(
						user.ID.String(),
						user.DisplayName,
						user.Email,
						formatBool(user.IsAdmin),
						formatBool(user.IsActive),
						user.CreatedAt.Format(time.RFC3339),
					)
				}
			})
		},
	}

	cmd.Flags().String("display-name", "", "filter by display name")
	cmd.Flags().String("email", "", "filter by email")
	cmd.Flags().String("active", "", "filter by active state (true/false)")

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user ID: %w", err)
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			user, err := client.Users().Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			return render(cmd.OutOrStdout(), user, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", user.ID.String())
				_ = table.Append("Name", user.DisplayName)
				_ = table.Append("Email", user.Email)
				_ = table.Append("Admin", formatBool(user.IsAdmin))
				_ = table.Append("Active", formatBool(user.IsActive))
				_ = table.Append("Created", user.CreatedAt.Format(time.RFC3339))
			})
		},
	}
}
