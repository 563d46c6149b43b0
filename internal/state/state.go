// Package state persists sync-run bookkeeping between connector executions.
//
// A SyncState records the identity and timing of the most recent completed
// run for one HubSpot app. Stores are keyed by app id so a single backend
// can serve several configured connections. Backends are selected through
// the factory in this package: memory, file, NATS JetStream KV, or none.
package state

import (
	"context"
	"errors"
)

// Static errors for err113 compliance.
var (
	// ErrNotFound indicates no state has been saved for the app id.
	ErrNotFound = errors.New("sync state not found")

	// ErrAppIDRequired indicates an empty app id was supplied.
	ErrAppIDRequired = errors.New("app id is required")

	// ErrStateRequired indicates a nil state was supplied to Save.
	ErrStateRequired = errors.New("sync state is required")
)

// SyncState records the outcome of the most recent completed sync run for
// one app.
type SyncState struct {
	// RunID is the unique identifier assigned to the run.
	RunID string `json:"runId" yaml:"runId"`

	// StartedOn is the run's start time in epoch milliseconds. It becomes
	// the incremental watermark for the next run.
	StartedOn int64 `json:"startedOn" yaml:"startedOn"`

	// CompletedOn is the run's completion time in epoch milliseconds.
	CompletedOn int64 `json:"completedOn" yaml:"completedOn"`
}

// Store persists sync state per app id.
type Store interface {
	// Get returns the state saved for the app id, or ErrNotFound.
	Get(ctx context.Context, appID string) (*SyncState, error)

	// Save persists the state for the app id, replacing any prior state.
	Save(ctx context.Context, appID string, state *SyncState) error

	// Delete removes the state for the app id. Deleting absent state is
	// not an error.
	Delete(ctx context.Context, appID string) error
}
