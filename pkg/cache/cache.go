// Package cache provides content-addressed caching for rendered artifacts.
//
// Rendering a snapshot to SVG or PNG goes through Graphviz, which is the
// slowest step in the pipeline. Artifacts are keyed by a hash of the DOT
// source plus the output format, so an unchanged hierarchy renders once
// and is served from disk afterwards.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache stores rendered artifacts keyed by content hash.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact.
// The key is derived from the DOT source so that any change to the
// hierarchy or its open state produces a distinct key.
func ArtifactKey(dot string, format string) string {
	return fmt.Sprintf("artifact:%s:%s", format, Hash([]byte(dot)))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
