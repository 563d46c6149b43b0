package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/graphwell-io/hubsync/pkg/hubspot"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewRolesCommand creates the roles command group
func NewRolesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "roles",
		Aliases: []string{"role"},
		Short:   "Work with account roles",
		Long:    "List the permission roles defined in the configured HubSpot account",
	}

	cmd.AddCommand(newRolesListCommand())

	return cmd
}

func newRolesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List roles",
		Long:  "List all permission roles in the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, collector, err := createClient(ctx, nil)
			if err != nil {
				return err
			}
			defer reportMetrics(collector)

			var roles []hubspot.Role

			err = client.Roles().Each(ctx, func(role hubspot.Role) error {
				roles = append(roles, role)
				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to list roles: %w", err)
			}

			return renderOutput(roles, func() error {
				if len(roles) == 0 {
					fmt.Println("No roles found")
					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Requires Billing Write")

				for _, role := range roles {
					_ = table.Append(role.ID, role.Name, boolWord(role.RequiresBillingWrite))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}
}
