package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewUsersCommand creates the users command group
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Work with account users",
		Long:    "Fetch account users from the HubSpot settings API",
	}

	cmd.AddCommand(newUsersGetCommand())

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get a user",
		Long:  "Fetch a single account user by its numeric user id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]
			ctx := context.Background()

			client, collector, err := createClient(ctx, nil)
			if err != nil {
				return err
			}
			defer reportMetrics(collector)

			user, err := client.Users().Get(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			return renderOutput(user, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", user.ID)
				_ = table.Append("Email", user.Email)
				_ = table.Append("Role ID", orNotAvailable(user.RoleID))
				_ = table.Append("Super Admin", boolWord(user.SuperAdmin))
				_ = table.Append("Primary Team", orNotAvailable(user.PrimaryTeamID))

				if len(user.SecondaryTeamIDs) > 0 {
					_ = table.Append("Secondary Teams", strings.Join(user.SecondaryTeamIDs, ", "))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}
}
