// Package pkg provides the core libraries for floattree hierarchy coordination.
//
// # Overview
//
// Floattree manages trees of floating UI elements (menus, submenus,
// popovers) whose open/closed state must stay coordinated: closing a
// parent closes its open descendants, and the topmost open elements are
// always known. The pkg directory is organized into five main areas:
//
//  1. [tree] - Generic hierarchy (nodes, traversal, relationships, deletion strategies)
//  2. [floating] - Open/close coordination (cascades, subscriptions, batching)
//  3. [snapshot] - Serialization of coordinated hierarchies
//  4. [store]/[cache] - Persistence backends and the rendered artifact cache
//  5. [render] - Graphviz diagram generation
//
// # Architecture
//
// The typical data flow through floattree:
//
//	tree.Tree (structure)
//	     ↓
//	floating.Coordinator (open/close state + cascades)
//	     ↓
//	snapshot.Snapshot (flat wire format)
//	     ↓                      ↓
//	store.Store (persist)   render.ToDOT → SVG/PNG (visualize)
//
// Supporting packages: [errors] for structured error codes, [observability]
// for state/store/cache hooks, and [buildinfo] for version stamping.
package pkg
