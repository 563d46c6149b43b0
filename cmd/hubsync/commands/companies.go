package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/graphwell-io/hubsync/internal/mapper"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewCompaniesCommand creates the companies command group
func NewCompaniesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "companies",
		Aliases: []string{"company"},
		Short:   "Work with CRM companies",
		Long:    "Fetch company records from the HubSpot companies API",
	}

	cmd.AddCommand(newCompaniesRecentCommand())

	return cmd
}

func newCompaniesRecentCommand() *cobra.Command {
	var since int64

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently modified companies",
		Long:  "List companies modified since a watermark, following pagination until exhausted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var history *hubspot.ExecutionHistory
			if since > 0 {
				history = &hubspot.ExecutionHistory{
					LastSuccessful: &hubspot.RunRecord{StartedOn: since},
				}
			}

			client, collector, err := createClient(ctx, history)
			if err != nil {
				return err
			}
			defer reportMetrics(collector)

			var companies []hubspot.Company

			err = client.Companies().EachRecentlyModified(ctx, func(company hubspot.Company) error {
				companies = append(companies, company)
				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to list companies: %w", err)
			}

			return renderOutput(companies, func() error {
				if len(companies) == 0 {
					fmt.Println("No companies found")
					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Owner ID", "Deleted")

				for _, company := range companies {
					_ = table.Append(strconv.FormatInt(company.CompanyID, 10),
						orNotAvailable(company.Property("name")),
						orNotAvailable(company.Property(mapper.OwnerIDProperty)),
						boolWord(company.IsDeleted))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&since, "since", 0, "fetch companies modified after this epoch-millisecond time")

	return cmd
}
