// Package hsclient provides the main entry point for creating HubSpot API clients
package hsclient

import (
	"context"
	"strings"

	"github.com/graphwell-io/hubsync/internal/auth"
	"github.com/graphwell-io/hubsync/internal/client"
	"github.com/graphwell-io/hubsync/internal/constants"
	"github.com/graphwell-io/hubsync/internal/http"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

// New creates a new HubSpot API client. The execution history carries the
// watermark of the last successful run and may be nil (full sync). The
// config is validated and not mutated.
func New(ctx context.Context, config *hubspot.Config, history *hubspot.ExecutionHistory) (hubspot.Client, error) {
	if config == nil {
		return nil, hubspot.ErrConfigRequired
	}

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	baseURL := normalizeBaseURL(config.BaseURL)
	tokenManager := auth.NewStaticTokenManager(config.AccessToken)
	httpClient := http.NewClient(baseURL, tokenManager, createHTTPClientOptions(config)...)

	facade := client.New(httpClient, baseURL, history)
	if config.Logger != nil {
		facade.WithLogger(config.Logger)
	}

	return facade, nil
}

// NewWithToken creates a client for an app id and private-app access token
// against the public API host.
func NewWithToken(ctx context.Context, appID, token string) (hubspot.Client, error) {
	return New(ctx, &hubspot.Config{
		AppID:       appID,
		AccessToken: token,
	}, nil)
}

// normalizeBaseURL trims a trailing slash and defaults the scheme to https.
// An empty URL falls back to the public API host.
func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return hubspot.DefaultBaseURL
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *hubspot.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.RequestsPerSecond > 0 {
		burst := config.RateLimitBurst
		if burst < 1 {
			burst = 1
		}

		httpOpts = append(httpOpts, http.WithRateLimit(config.RequestsPerSecond, burst))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}
