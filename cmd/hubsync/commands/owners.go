package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/graphwell-io/hubsync/pkg/hubspot"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewOwnersCommand creates the owners command group
func NewOwnersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "owners",
		Aliases: []string{"owner"},
		Short:   "Work with CRM owners",
		Long:    "List the owners of the configured HubSpot account",
	}

	cmd.AddCommand(newOwnersListCommand())

	return cmd
}

func newOwnersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List owners",
		Long:  "List all owners, following pagination until the collection is exhausted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, collector, err := createClient(ctx, nil)
			if err != nil {
				return err
			}
			defer reportMetrics(collector)

			var owners []hubspot.Owner

			err = client.Owners().Each(ctx, func(owner hubspot.Owner) error {
				owners = append(owners, owner)
				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to list owners: %w", err)
			}

			return renderOutput(owners, func() error {
				if len(owners) == 0 {
					fmt.Println("No owners found")
					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Email", "First Name", "Last Name", "User ID", "Archived")

				for _, owner := range owners {
					userID := NotAvailable
					if owner.UserID != 0 {
						userID = strconv.FormatInt(owner.UserID, 10)
					}

					_ = table.Append(owner.ID, owner.Email, owner.FirstName,
						owner.LastName, userID, boolWord(owner.Archived))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}
}
