package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/graphwell-io/hubsync/internal/constants"
	"github.com/graphwell-io/hubsync/internal/logging"
	"github.com/graphwell-io/hubsync/pkg/hsclient"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// Common values.
	Yes    = "yes"
	No     = "no"
	Masked = "***"
)

// Common static errors used throughout the commands package.
var (
	ErrNotLoggedIn      = errors.New("no access token configured")
	ErrAppIDMissing     = errors.New("no app id configured")
	ErrTokenRequired    = errors.New("access token is required")
	ErrUnknownConfigKey = errors.New("unknown configuration key")
)

// renderOutput renders data in the configured output format. JSON and YAML
// encode data directly; the table renderer is supplied by the caller
// because columns differ per resource.
func renderOutput(data interface{}, renderTable func() error) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(data)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(data)
	default:
		return renderTable()
	}
}

// createClient builds a HubSpot client from the resolved configuration.
// CLI clients retry transient failures and pace requests under HubSpot's
// product limit. When --verbose is set, a metrics collector rides the
// interceptor chain so commands can report request totals after they finish.
func createClient(ctx context.Context, history *hubspot.ExecutionHistory) (hubspot.Client, *hubspot.MetricsCollector, error) {
	token := viper.GetString("token")
	if token == "" {
		return nil, nil, fmt.Errorf("%w, use 'hubsync login' first", ErrNotLoggedIn)
	}

	appID := viper.GetString("app_id")
	if appID == "" {
		return nil, nil, fmt.Errorf("%w, use 'hubsync login' or --app-id", ErrAppIDMissing)
	}

	config := &hubspot.Config{
		AppID:             appID,
		AccessToken:       token,
		BaseURL:           viper.GetString("api"),
		RetryMax:          constants.DefaultRetryMax,
		RequestsPerSecond: constants.DefaultRequestsPerSecond,
		RateLimitBurst:    constants.DefaultRateLimitBurst,
		Debug:             viper.GetBool("debug"),
	}

	if config.Debug {
		config.Logger = logging.New(logging.Options{Level: "debug"})
	}

	var collector *hubspot.MetricsCollector

	if viper.GetBool("verbose") {
		collector = hubspot.NewMetricsCollector()

		chain := hubspot.NewInterceptorChain()
		chain.AddRequestInterceptor(hubspot.MetricsRequestInterceptor(collector))
		chain.AddResponseInterceptor(hubspot.MetricsResponseInterceptor(collector))
		config.Interceptors = chain
	}

	client, err := hsclient.New(ctx, config, history)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, collector, nil
}

// reportMetrics prints request totals to stderr. A nil collector means
// --verbose was not set and nothing is printed.
func reportMetrics(collector *hubspot.MetricsCollector) {
	if collector == nil {
		return
	}

	requests, errs := collector.Totals()
	fmt.Fprintf(os.Stderr, "Requests: %d, errors: %d\n", requests, errs)
}

// commandLogger builds the logger handed to long-running work: debug level
// under --debug, info under --verbose, errors only otherwise.
func commandLogger() hubspot.Logger {
	switch {
	case viper.GetBool("debug"):
		return logging.New(logging.Options{Level: "debug"})
	case viper.GetBool("verbose"):
		return logging.New(logging.Options{Level: "info"})
	default:
		return logging.New(logging.Options{Level: "error"})
	}
}

// boolWord renders a bool as yes/no for table output.
func boolWord(value bool) string {
	if value {
		return Yes
	}

	return No
}

// stepTitle renders a step name like "fetch-owners" as "Fetch Owners".
func stepTitle(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}

// orNotAvailable substitutes N/A for empty table cells.
func orNotAvailable(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}
