package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sherif414/floattree/pkg/observability"
	"github.com/sherif414/floattree/pkg/snapshot"
)

// FileStore is a file-based snapshot store for CLI usage.
// Snapshots are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based snapshot store.
// If baseDir is empty, defaults to ~/.config/floattree/snapshots/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "floattree", "snapshots")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// validID rejects IDs that would escape the base directory or produce
// unusable file names.
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, "/\\") && id != "." && id != ".."
}

// Save writes the snapshot as a JSON file, replacing any previous version.
func (s *FileStore) Save(ctx context.Context, id string, snap snapshot.Snapshot) error {
	start := time.Now()
	err := s.save(id, snap)
	observability.Store().OnSave(ctx, "file", id, snap.NodeCount(), time.Since(start), err)
	return err
}

func (s *FileStore) save(id string, snap snapshot.Snapshot) error {
	if !validID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := snapshot.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(s.path(id), data, 0600); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}
	return nil
}

// Load reads and validates the snapshot file for id.
func (s *FileStore) Load(ctx context.Context, id string) (snapshot.Snapshot, error) {
	start := time.Now()
	snap, err := s.load(id)
	observability.Store().OnLoad(ctx, "file", id, time.Since(start), err)
	return snap, err
}

func (s *FileStore) load(id string) (snapshot.Snapshot, error) {
	if !validID(id) {
		return snapshot.Snapshot{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return snapshot.Snapshot{}, ErrNotFound
		}
		return snapshot.Snapshot{}, fmt.Errorf("read snapshot file: %w", err)
	}
	snap, err := snapshot.Unmarshal(data)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("parse snapshot %s: %w", id, err)
	}
	return snap, nil
}

// Delete removes the snapshot file. Missing files are not an error.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if !validID(id) {
		err = fmt.Errorf("%w: %q", ErrInvalidID, id)
	} else if rmErr := os.Remove(s.path(id)); rmErr != nil && !os.IsNotExist(rmErr) {
		err = fmt.Errorf("remove snapshot file: %w", rmErr)
	}
	observability.Store().OnDelete(ctx, "file", id, err)
	return err
}

// List returns the IDs of all stored snapshots in sorted order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	slices.Sort(ids)
	return ids, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
