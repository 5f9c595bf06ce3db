// Package jsonfile stores roster snapshots in a single JSON file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/relaycoach/relaycoach/go/internal/storage"
)

// Store reads and writes a snapshot file. Writes replace the file atomically.
type Store struct {
	path string
}

// NewStore creates a store for path. The file need not exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

var _ storage.Store = (*Store)(nil)

// Path returns the snapshot file path.
func (s *Store) Path() string { return s.path }

// Load reads the snapshot. A missing file is an empty roster.
func (s *Store) Load(ctx context.Context) (storage.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return storage.Snapshot{}, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("path", s.path).Msg("no roster file yet, starting empty")
		return storage.Snapshot{Version: storage.SnapshotVersion}, nil
	}
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("failed to read roster file: %w", err)
	}

	var snap storage.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return storage.Snapshot{}, fmt.Errorf("failed to parse roster file %s: %w", s.path, err)
	}
	return snap, nil
}

// Save writes the snapshot to a temporary file and renames it into place.
func (s *Store) Save(ctx context.Context, snap storage.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create roster directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write roster: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync roster: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close roster file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace roster file: %w", err)
	}
	return nil
}
