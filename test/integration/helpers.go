//go:build integration
// +build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/graphwell-io/hubsync/pkg/hsclient"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	AppID       string
	AccessToken string
	BaseURL     string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		AppID:       os.Getenv("HUBSPOT_APP_ID"),
		AccessToken: os.Getenv("HUBSPOT_ACCESS_TOKEN"),
		BaseURL:     os.Getenv("HUBSPOT_API_URL"),
		Verbose:     os.Getenv("HUBSYNC_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	if config.AccessToken == "" {
		t.Skip("HUBSPOT_ACCESS_TOKEN not set, skipping integration test")
	}

	if config.AppID == "" {
		t.Skip("HUBSPOT_APP_ID not set, skipping integration test")
	}
}

// NewClient creates a client against the configured portal
func (config *TestConfig) NewClient(t *testing.T, history *hubspot.ExecutionHistory) hubspot.Client {
	t.Helper()

	clientConfig := &hubspot.Config{
		AppID:       config.AppID,
		AccessToken: config.AccessToken,
		BaseURL:     config.BaseURL,
	}

	if config.Verbose {
		clientConfig.Debug = true
	}

	client, err := hsclient.New(context.Background(), clientConfig, history)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return client
}
