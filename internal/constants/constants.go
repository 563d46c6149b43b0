package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// StateFilePerm is the permission for persisted sync-state files.
	StateFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as the
	// authentication probe.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are off unless configured; these bound the opt-in
// behavior.
const (
	// DefaultRetryMax is the retry count applied when retries are enabled
	// without an explicit maximum.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum backoff between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum backoff between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Pagination sizes.
const (
	// LegacyPageSize is the fixed `count` of the legacy v2 offset
	// protocol.
	LegacyPageSize = 30

	// DefaultPageLimit is the page size requested from v3 collection
	// endpoints when the caller does not choose one.
	DefaultPageLimit = 100

	// MaxPageLimit is the largest page size HubSpot accepts on v3
	// collection endpoints.
	MaxPageLimit = 100

	// GraphBatchSize bounds how many records the sync engine buffers
	// before flushing them to the graph store.
	GraphBatchSize = 500
)

// Rate limiting.
const (
	// DefaultRequestsPerSecond paces requests under HubSpot's
	// 100-requests-per-10-seconds product limit when pacing is enabled
	// without an explicit rate.
	DefaultRequestsPerSecond = 10

	// DefaultRateLimitBurst is the token-bucket burst used with the
	// default rate.
	DefaultRateLimitBurst = 10
)
