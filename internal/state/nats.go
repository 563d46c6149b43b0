package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

// ErrNATSURLRequired indicates a NATS store was requested without a server
// URL.
var ErrNATSURLRequired = errors.New("NATS URL is required")

// DefaultNATSBucket is the JetStream KV bucket used when none is configured.
const DefaultNATSBucket = "hubsync-state"

// NATSConfig configures the NATS-backed store.
type NATSConfig struct {
	// URL is the NATS server URL, e.g. nats://localhost:4222.
	URL string

	// Bucket is the JetStream KV bucket name. Empty selects
	// DefaultNATSBucket.
	Bucket string

	// CredentialsFile is an optional NATS credentials file path.
	CredentialsFile string

	// Username and Password enable basic authentication when set.
	Username string
	Password string
}

// NATSStore persists sync state in a JetStream key-value bucket, keyed by
// app id. It lets several connector instances share a watermark. The bucket
// is created when it does not exist.
type NATSStore struct {
	conn *nats.Conn
	kv   nats.KeyValue
}

// NewNATSStore connects to the NATS server and binds the state bucket.
func NewNATSStore(config *NATSConfig) (*NATSStore, error) {
	if config == nil || config.URL == "" {
		return nil, ErrNATSURLRequired
	}

	opts := []nats.Option{nats.Name("hubsync-state")}

	if config.CredentialsFile != "" {
		opts = append(opts, nats.UserCredentials(config.CredentialsFile))
	}

	if config.Username != "" {
		opts = append(opts, nats.UserInfo(config.Username, config.Password))
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("opening JetStream context: %w", err)
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = DefaultNATSBucket
	}

	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      bucket,
			Description: "hubsync per-app sync state",
		})
	}

	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("binding KV bucket %s: %w", bucket, err)
	}

	return &NATSStore{conn: conn, kv: kv}, nil
}

// Get returns the state stored under the app id.
func (s *NATSStore) Get(ctx context.Context, appID string) (*SyncState, error) {
	if appID == "" {
		return nil, ErrAppIDRequired
	}

	entry, err := s.kv.Get(appID)
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("reading state for app %s: %w", appID, err)
	}

	var syncState SyncState

	err = json.Unmarshal(entry.Value(), &syncState)
	if err != nil {
		return nil, fmt.Errorf("parsing state for app %s: %w", appID, err)
	}

	return &syncState, nil
}

// Save stores the state under the app id.
func (s *NATSStore) Save(ctx context.Context, appID string, syncState *SyncState) error {
	if appID == "" {
		return ErrAppIDRequired
	}

	if syncState == nil {
		return ErrStateRequired
	}

	data, err := json.Marshal(syncState)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	_, err = s.kv.Put(appID, data)
	if err != nil {
		return fmt.Errorf("writing state for app %s: %w", appID, err)
	}

	return nil
}

// Delete removes the state stored under the app id.
func (s *NATSStore) Delete(ctx context.Context, appID string) error {
	if appID == "" {
		return ErrAppIDRequired
	}

	err := s.kv.Delete(appID)
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting state for app %s: %w", appID, err)
	}

	return nil
}

// Close releases the NATS connection.
func (s *NATSStore) Close() error {
	s.conn.Close()

	return nil
}
