package hubspot

import (
	"time"
)

// DefaultBaseURL is the public HubSpot API host used when Config.BaseURL is
// left empty.
const DefaultBaseURL = "https://api.hubapi.com"

// Config represents client configuration for building a hubspot.Client.
//
// # Authentication
//
// HubSpot private-app access tokens are static bearer tokens; AccessToken is
// sent unchanged as `Authorization: Bearer <token>` on every request. There
// is no refresh flow at this layer.
//
// # Timeouts, retries, and rate limiting
//
// Per-request timeouts should generally be controlled via the context passed
// to client methods. By default a failed request is not retried and a single
// failure aborts the iteration that issued it. Transient-failure retries
// (HTTP 5xx and 429) can be opted into via RetryMax/RetryWaitMin/RetryWaitMax
// when the surrounding framework wants them. RequestsPerSecond enables a
// client-side token bucket that paces requests below HubSpot's burst limits.
type Config struct {
	// AppID identifies the HubSpot application (portal) this client collects
	// for. Required; used to key persisted sync state.
	AppID string `json:"appId"       yaml:"appId"`
	// AccessToken is the private-app OAuth access token. Required.
	AccessToken string `json:"accessToken" yaml:"accessToken"`
	// BaseURL is the API host (e.g. "https://api.hubapi.com"). Optional; the
	// client normalizes it by trimming a trailing slash and adding "https://"
	// when no scheme is present, and falls back to DefaultBaseURL when empty.
	BaseURL string `json:"baseUrl"     yaml:"baseUrl"`

	// HTTPTimeout is an optional default HTTP timeout where supported. Most
	// calls should rely on context timeouts instead.
	HTTPTimeout time.Duration `json:"-" yaml:"-"`
	// RetryMax is the maximum number of retries for transient failures
	// (HTTP 5xx, 429, connection errors). Zero disables retries entirely.
	RetryMax int `json:"-" yaml:"-"`
	// RetryWaitMin is the minimum backoff between retries. Applied when
	// RetryMax > 0.
	RetryWaitMin time.Duration `json:"-" yaml:"-"`
	// RetryWaitMax is the maximum backoff between retries. Applied when
	// RetryMax > 0.
	RetryWaitMax time.Duration `json:"-" yaml:"-"`
	// RequestsPerSecond enables client-side request pacing when > 0.
	RequestsPerSecond float64 `json:"-" yaml:"-"`
	// RateLimitBurst is the token-bucket burst size used with
	// RequestsPerSecond. Defaults to 1 when unset.
	RateLimitBurst int `json:"-" yaml:"-"`
	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool `json:"-" yaml:"-"`
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger `json:"-" yaml:"-"`
	// UserAgent overrides the default User-Agent header sent by the client.
	UserAgent string `json:"-" yaml:"-"`
	// Interceptors is an optional chain of request/response hooks run by
	// the transport around every request.
	Interceptors *InterceptorChain `json:"-" yaml:"-"`
}

// Validate checks that the required configuration fields are present. It
// returns a *ValidationError naming every missing field, or nil.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	var missing []string

	if c.AppID == "" {
		missing = append(missing, "appId")
	}

	if c.AccessToken == "" {
		missing = append(missing, "oauthAccessToken")
	}

	if len(missing) > 0 {
		return &ValidationError{MissingFields: missing}
	}

	return nil
}

// ExecutionHistory describes the prior runs of the integration, as supplied
// by the orchestrating framework. Only the last successful run matters to
// the client; it bounds the incremental companies fetch.
type ExecutionHistory struct {
	LastSuccessful *RunRecord `json:"lastSuccessful,omitempty" yaml:"lastSuccessful,omitempty"`
}

// RunRecord identifies a single prior run.
type RunRecord struct {
	// StartedOn is the run's start time in epoch milliseconds.
	StartedOn int64 `json:"startedOn" yaml:"startedOn"`
}

// SinceMillis returns the incremental-fetch watermark: the start time of the
// last successful run, or 0 when no successful run exists. Zero requests the
// full modification history. Safe to call on a nil history.
func (h *ExecutionHistory) SinceMillis() int64 {
	if h == nil || h.LastSuccessful == nil {
		return 0
	}

	return h.LastSuccessful.StartedOn
}
