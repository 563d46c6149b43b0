package state

import (
	"context"
	"errors"
	"fmt"
)

// Type selects the state store backend.
type Type string

const (
	// TypeMemory keeps state in process memory.
	TypeMemory Type = "memory"

	// TypeFile persists state as JSON files under $HOME/.hubsync.
	TypeFile Type = "file"

	// TypeNATS persists state in a JetStream KV bucket.
	TypeNATS Type = "nats"

	// TypeNone disables persistence; every run is a full collection.
	TypeNone Type = "none"
)

// Static errors for err113 compliance.
var (
	// ErrNATSConfigRequired indicates a NATS store was requested without
	// configuration.
	ErrNATSConfigRequired = errors.New("NATS configuration required for NATS state store")

	// ErrUnsupportedType indicates an unknown backend type.
	ErrUnsupportedType = errors.New("unsupported state store type")

	// ErrPersistenceDisabled is reported by the no-op store's Get. It
	// matches ErrNotFound so callers treat disabled persistence as absent
	// state.
	ErrPersistenceDisabled = fmt.Errorf("%w: persistence disabled", ErrNotFound)
)

// Config selects and configures a state store backend.
type Config struct {
	// Type is the backend type.
	Type Type

	// File configures the file backend.
	File *FileConfig

	// NATS configures the NATS backend.
	NATS *NATSConfig
}

// DefaultConfig returns the default store configuration, a memory store.
func DefaultConfig() *Config {
	return &Config{Type: TypeMemory}
}

// NewStoreFromConfig creates a state store from configuration.
func NewStoreFromConfig(config *Config) (Store, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Type {
	case TypeMemory:
		return NewMemoryStore(), nil

	case TypeFile:
		return NewFileStore(config.File)

	case TypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		return NewNATSStore(config.NATS)

	case TypeNone:
		return NewNoOpStore(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, config.Type)
	}
}

// NoOpStore is a store that persists nothing.
type NoOpStore struct{}

// NewNoOpStore creates a new no-op store.
func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

// Get always reports missing state.
func (s *NoOpStore) Get(ctx context.Context, appID string) (*SyncState, error) {
	return nil, ErrPersistenceDisabled
}

// Save does nothing.
func (s *NoOpStore) Save(ctx context.Context, appID string, syncState *SyncState) error {
	return nil
}

// Delete does nothing.
func (s *NoOpStore) Delete(ctx context.Context, appID string) error {
	return nil
}

// Builder helps build store configurations.
type Builder struct {
	config *Config
}

// NewBuilder creates a new store builder.
func NewBuilder() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithType sets the backend type.
func (b *Builder) WithType(storeType Type) *Builder {
	b.config.Type = storeType

	return b
}

// WithFileConfig sets the file backend directory.
func (b *Builder) WithFileConfig(directory string) *Builder {
	b.config.File = &FileConfig{Directory: directory}

	return b
}

// WithNATSConfig sets the NATS backend configuration.
func (b *Builder) WithNATSConfig(config *NATSConfig) *Builder {
	b.config.NATS = config

	return b
}

// Build creates the store from the configuration.
func (b *Builder) Build() (Store, error) {
	return NewStoreFromConfig(b.config)
}
