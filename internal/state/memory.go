package state

import (
	"context"
	"sync"
)

// MemoryStore keeps sync state in process memory. It is safe for concurrent
// use. State is lost when the process exits, so every new process performs a
// full collection.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]SyncState
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[string]SyncState),
	}
}

// Get returns the state saved for the app id.
func (s *MemoryStore) Get(ctx context.Context, appID string) (*SyncState, error) {
	if appID == "" {
		return nil, ErrAppIDRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.states[appID]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy so callers cannot mutate the stored value.
	result := stored

	return &result, nil
}

// Save persists the state for the app id.
func (s *MemoryStore) Save(ctx context.Context, appID string, syncState *SyncState) error {
	if appID == "" {
		return ErrAppIDRequired
	}

	if syncState == nil {
		return ErrStateRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[appID] = *syncState

	return nil
}

// Delete removes the state for the app id.
func (s *MemoryStore) Delete(ctx context.Context, appID string) error {
	if appID == "" {
		return ErrAppIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, appID)

	return nil
}
