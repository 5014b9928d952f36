// Package store provides persistence backends for hierarchy snapshots.
//
// This package defines the Store interface and implementations for
// different deployments:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI usage
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage for durable multi-tenant deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// CLI
//	st, err := store.NewFileStore("")  // Uses ~/.config/floattree/snapshots/
//
//	// Production
//	st, err := store.NewRedisStore(store.RedisConfig{Addr: "localhost:6379"})
//
// Persist and restore:
//
//	err := st.Save(ctx, "main-menu", snapshot.FromCoordinator(c))
//	snap, err := st.Load(ctx, "main-menu")
//	if errors.Is(err, store.ErrNotFound) {
//	    // No such snapshot
//	}
//
// All implementations report missing snapshots with [ErrNotFound] and emit
// observability store hooks on every operation.
package store

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/sherif414/floattree/pkg/observability"
	"github.com/sherif414/floattree/pkg/snapshot"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned by Load when the snapshot does not exist.
	ErrNotFound = errors.New("snapshot not found")

	// ErrInvalidID is returned when a snapshot ID is empty or unusable as
	// a storage key.
	ErrInvalidID = errors.New("invalid snapshot ID")
)

// Store persists named hierarchy snapshots.
//
// Implementations must be safe for concurrent use; the single-threaded
// contract of the tree/coordinator layer does not extend to storage.
type Store interface {
	// Save writes the snapshot under id, replacing any previous version.
	Save(ctx context.Context, id string, snap snapshot.Snapshot) error

	// Load returns the snapshot stored under id, or ErrNotFound.
	Load(ctx context.Context, id string) (snapshot.Snapshot, error)

	// Delete removes the snapshot. Deleting a missing snapshot is not an
	// error.
	Delete(ctx context.Context, id string) error

	// List returns all stored snapshot IDs in sorted order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// MemoryStore
// =============================================================================

// MemoryStore keeps snapshots in process memory.
// Useful for tests and single-process development servers.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]snapshot.Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]snapshot.Snapshot)}
}

// Save stores a deep-enough copy of the snapshot under id.
func (s *MemoryStore) Save(ctx context.Context, id string, snap snapshot.Snapshot) error {
	start := time.Now()
	err := s.save(id, snap)
	observability.Store().OnSave(ctx, "memory", id, snap.NodeCount(), time.Since(start), err)
	return err
}

func (s *MemoryStore) save(id string, snap snapshot.Snapshot) error {
	if id == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[id] = cloneSnapshot(snap)
	return nil
}

// Load returns a copy of the snapshot stored under id. Copying on the way
// out keeps caller mutations from reaching the stored version.
func (s *MemoryStore) Load(ctx context.Context, id string) (snapshot.Snapshot, error) {
	start := time.Now()
	s.mu.RLock()
	snap, ok := s.snaps[id]
	s.mu.RUnlock()

	var err error
	if !ok {
		err = ErrNotFound
	} else {
		snap = cloneSnapshot(snap)
	}
	observability.Store().OnLoad(ctx, "memory", id, time.Since(start), err)
	return snap, err
}

// cloneSnapshot copies the node slice and each node's Meta map, the two
// mutable regions a snapshot shares with its producer.
func cloneSnapshot(snap snapshot.Snapshot) snapshot.Snapshot {
	copied := snapshot.Snapshot{Nodes: make([]snapshot.Node, len(snap.Nodes))}
	for i, n := range snap.Nodes {
		if n.Meta != nil {
			n.Meta = maps.Clone(n.Meta)
		}
		copied.Nodes[i] = n
	}
	return copied
}

// Delete removes the snapshot if present.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.snaps, id)
	s.mu.Unlock()
	observability.Store().OnDelete(ctx, "memory", id, nil)
	return nil
}

// List returns all stored snapshot IDs in sorted order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.snaps)), nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
