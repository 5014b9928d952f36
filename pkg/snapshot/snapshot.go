// Package snapshot defines the serialization format for coordinated
// floating-element hierarchies.
//
// This package sits at the boundary between the in-memory representation
// ([floating.Coordinator] over [tree.Tree]) and external formats: JSON
// files, API payloads, and the persistence backends in pkg/store.
//
// # Format
//
// A snapshot is a flat node list; hierarchy is expressed through parent
// references, with the root being the single node without one:
//
//	{
//	  "nodes": [
//	    {"id": "app"},
//	    {"id": "menu", "parent_id": "app", "label": "File", "open": true},
//	    {"id": "sub", "parent_id": "menu", "open": true}
//	  ]
//	}
//
// Common operations:
//
//	snap, _ := snapshot.ReadFile("menus.json")       // File → Snapshot
//	c, _ := snapshot.ToCoordinator(snap, nil)        // Snapshot → Coordinator
//	snapshot.WriteFile(snapshot.FromCoordinator(c), "menus.json")
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Snapshot Serialization API
// =============================================================================

// Marshal converts a snapshot to indented JSON bytes.
func Marshal(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes JSON bytes to a snapshot and validates it.
func Unmarshal(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// WriteFile writes a snapshot to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(s Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(s, f)
}

// ReadFile reads a JSON file and returns the decoded, validated snapshot.
func ReadFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// Write writes a snapshot as JSON to an io.Writer.
// Use Marshal for in-memory serialization or WriteFile for files.
func Write(s Snapshot, w io.Writer) error {
	return writeTo(s, w)
}

// Read decodes a JSON snapshot from an io.Reader and validates it.
func Read(r io.Reader) (Snapshot, error) {
	return readFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(s Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
