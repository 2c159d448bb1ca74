package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dropmail/core/logger"
	"log/slog"
)

// SnapshotStore persists the registry as a single JSON file. Every mutation
// rewrites the full mapping through a temp file and rename, so readers never
// observe a partially written snapshot.
//
// Failure policy: a missing or corrupt file degrades to an empty state with
// a logged warning, and write failures are logged and swallowed: the
// in-memory view remains correct even while durability is lost.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a file-backed store at the given path, creating
// parent directories as needed.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	if path == "" {
		return nil, fmt.Errorf("registry: empty snapshot path")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("registry: create snapshot dir: %w", err)
		}
	}
	return &SnapshotStore{path: path}, nil
}

// Load reads the snapshot file. Absence and corruption both yield an empty
// state rather than an error.
func (s *SnapshotStore) Load(ctx context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		logger.Warn(ctx, "registry", "snapshot.load.fail",
			slog.String("path", s.path),
			slog.String("err", err.Error()),
		)
		return nil, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logger.Warn(ctx, "registry", "snapshot.corrupt",
			slog.String("path", s.path),
			slog.String("err", err.Error()),
		)
		return nil, nil
	}
	return &snap, nil
}

// RecordMint rewrites the snapshot after a mint.
func (s *SnapshotStore) RecordMint(ctx context.Context, snap *Snapshot, owner int64, address string) error {
	s.write(ctx, snap)
	return nil
}

// RecordBlock rewrites the snapshot after a block-list change.
func (s *SnapshotStore) RecordBlock(ctx context.Context, snap *Snapshot, owner int64, blocked bool) error {
	s.write(ctx, snap)
	return nil
}

// Close is a no-op; every write is already flushed to its final name.
func (s *SnapshotStore) Close() error {
	return nil
}

func (s *SnapshotStore) write(ctx context.Context, snap *Snapshot) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		logger.Error(ctx, "registry", "snapshot.encode.fail",
			slog.String("err", err.Error()),
		)
		return
	}

	tmp := s.path + ".tmp"
	if err := writeFileSynced(tmp, data); err != nil {
		logger.Warn(ctx, "registry", "snapshot.write.fail",
			slog.String("path", tmp),
			slog.String("err", err.Error()),
		)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		logger.Warn(ctx, "registry", "snapshot.rename.fail",
			slog.String("path", s.path),
			slog.String("err", err.Error()),
		)
	}
}

// writeFileSynced writes data and flushes it to stable storage before
// returning, so the rename never publishes a snapshot the disk has not
// seen yet.
func writeFileSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
