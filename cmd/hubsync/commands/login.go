package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/graphwell-io/hubsync/internal/constants"
	"github.com/graphwell-io/hubsync/pkg/hsclient"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		token       string
		appID       string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store HubSpot credentials",
		Long:  "Verify a HubSpot private-app access token and persist it to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			if appID == "" {
				appID = viper.GetString("app_id")
			}

			if appID == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("App id: ")
				appID, _ = reader.ReadString('\n')
				appID = strings.TrimSpace(appID)
			}

			if appID == "" {
				return ErrAppIDMissing
			}

			if token == "" {
				token = viper.GetString("token")
			}

			if token == "" {
				fmt.Print("Access token: ")
				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = strings.TrimSpace(string(byteToken))
				fmt.Println()
			}

			if token == "" {
				return ErrTokenRequired
			}

			config := &hubspot.Config{
				AppID:       appID,
				AccessToken: token,
				BaseURL:     apiEndpoint,
				HTTPTimeout: constants.ShortHTTPTimeout,
			}

			ctx := context.Background()

			client, err := hsclient.New(ctx, config, nil)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			err = client.VerifyAuthentication(ctx)
			if err != nil {
				return fmt.Errorf("failed to verify credentials: %w", err)
			}

			configStruct := loadConfig()
			configStruct.API = apiEndpoint
			configStruct.Token = token
			configStruct.AppID = appID

			err = saveConfigStruct(configStruct)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Successfully logged in for app %s\n", appID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&apiEndpoint, "api", "a", "", "HubSpot API base URL")
	cmd.Flags().StringVar(&token, "token", "", "private-app access token")
	cmd.Flags().StringVar(&appID, "app-id", "", "HubSpot app id used to key sync state")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget stored credentials",
		Long:  "Remove the access token from the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Token = ""

			if err := saveConfigStruct(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Successfully logged out")
			return nil
		},
	}
}
