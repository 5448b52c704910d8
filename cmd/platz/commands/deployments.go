package commands

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/platzio/platz-go/pkg/platz"
)

// NewDeploymentsCommand creates the deployments command group.
func NewDeploymentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"deployment", "deploy"},
		Short:   "Manage deployments",
		Long:    "List and inspect Platz deployments",
	}

	cmd.AddCommand(newDeploymentsListCommand())
	cmd.AddCommand(newDeploymentsGetCommand())

	return cmd
}

func newDeploymentsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deployments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := &platz.DeploymentFilters{
				Name:   stringFlag(cmd, "name"),
				KindID: stringFlag(cmd, "kind"),
			}

			enabled, err := boolFlag(cmd, "enabled")
			if err != nil {
				return err
			}

			filters.Enabled = enabled

			for flag, target := range map[string]**uuid.UUID{"cluster": &filters.ClusterID, "env": &filters.EnvID} {
				raw := stringFlag(cmd, flag)
				if raw == nil {
					continue
				}

				id, err := uuid.Parse(*raw)
				if err != nil {
					return fmt.Errorf("invalid --%s: %w", flag, err)
				}

				*target = &id
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			deployments, err := client.Deployments().List(cmd.Context(), filters)
			if err != nil {
				return fmt.Errorf("failed to list deployments: %w", err)
			}

			return render(cmd.OutOrStdout(), deployments, func(table *tablewriter.Table) {
				table.Header("ID", "Name", "Status", "Enabled", "Cluster", "Created")

				for _, deployment := range deployments {
					_ = table.Append(
						deployment.ID.String(),
						deployment.Name,
						string(deployment.Status),
						formatBool(deployment.Enabled),
						deployment.ClusterID.String(),
						deployment.CreatedAt.Format(time.RFC3339),
					)
				}
			})
		},
	}

	cmd.Flags().String("name", "", "filter by deployment name")
	cmd.Flags().String("kind", "", "filter by deployment kind")
	cmd.Flags().String("cluster", "", "filter by cluster ID")
	cmd.Flags().String("env", "", "filter by env ID")
	cmd.Flags().String("enabled", "", "filter by enabled state (true/false)")

	return cmd
}

func newDeploymentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid deployment ID: %w", err)
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			deployment, err := client.Deployments().Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get deployment: %w", err)
			}

			return render(cmd.OutOrStdout(), deployment, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", deployment.ID.String())
				_ = table.Append("Name", deployment.Name)
				_ = table.Append("Status", string(deployment.Status))
				_ = table.Append("Reason", formatOptional(deployment.Reason))
				_ = table.Append("Enabled", formatBool(deployment.Enabled))
				_ = table.Append("Kind", deployment.KindID.String())
				_ = table.Append("Cluster", deployment.ClusterID.String())
				_ = table.Append("Helm Chart", deployment.HelmChartID.String())
				_ = table.Append("Created", deployment.CreatedAt.Format(time.RFC3339))
			})
		},
	}
}
