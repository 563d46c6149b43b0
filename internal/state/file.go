package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/graphwell-io/hubsync/internal/constants"
)

// ErrInvalidAppID indicates the app id is not usable as a file name.
var ErrInvalidAppID = errors.New("app id is not usable as a file name")

// FileConfig configures the file store.
type FileConfig struct {
	// Directory is where state files are written. Empty selects
	// $HOME/.hubsync.
	Directory string
}

// FileStore persists sync state as one JSON file per app id. Files are
// named state-<appID>.json inside the configured directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at the configured directory. The
// directory is created on first save, not here.
func NewFileStore(config *FileConfig) (*FileStore, error) {
	dir := ""
	if config != nil {
		dir = config.Directory
	}

	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}

		dir = filepath.Join(home, ".hubsync")
	}

	return &FileStore{dir: dir}, nil
}

// Get reads the state file for the app id.
func (s *FileStore) Get(ctx context.Context, appID string) (*SyncState, error) {
	path, err := s.path(appID)
	if err != nil {
		return nil, err
	}

	// path is built from the configured directory and a validated app id
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("reading state file: %w", err)
	}

	var syncState SyncState

	err = json.Unmarshal(data, &syncState)
	if err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w", path, err)
	}

	return &syncState, nil
}

// Save writes the state file for the app id, creating the directory when
// missing.
func (s *FileStore) Save(ctx context.Context, appID string, syncState *SyncState) error {
	if syncState == nil {
		return ErrStateRequired
	}

	path, err := s.path(appID)
	if err != nil {
		return err
	}

	err = os.MkdirAll(s.dir, constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := json.MarshalIndent(syncState, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	err = os.WriteFile(path, data, constants.StateFilePerm)
	if err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}

	return nil
}

// Delete removes the state file for the app id.
func (s *FileStore) Delete(ctx context.Context, appID string) error {
	path, err := s.path(appID)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing state file: %w", err)
	}

	return nil
}

func (s *FileStore) path(appID string) (string, error) {
	if appID == "" {
		return "", ErrAppIDRequired
	}

	if strings.ContainsAny(appID, `/\`) || appID == "." || appID == ".." {
		return "", fmt.Errorf("%w: %s", ErrInvalidAppID, appID)
	}

	return filepath.Join(s.dir, "state-"+appID+".json"), nil
}
