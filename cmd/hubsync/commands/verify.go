package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify HubSpot credentials",
		Long:  "Call the HubSpot API to check that the configured access token works",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, collector, err := createClient(ctx, nil)
			if err != nil {
				return err
			}
			defer reportMetrics(collector)

			err = client.VerifyAuthentication(ctx)
			if err != nil {
				return fmt.Errorf("failed to verify credentials: %w", err)
			}

			fmt.Println("Authentication verified")

			return nil
		},
	}
}
