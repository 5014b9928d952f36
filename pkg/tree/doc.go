// Package tree implements the generic node hierarchy underneath floattree.
//
// A [Tree] owns a root [Node] plus a flat ID index, and provides creation,
// two deletion strategies, cycle-safe re-parenting, two traversal orders,
// and a relationship query engine for selecting structurally related node
// sets (ancestors, siblings, descendants, branches, and their complements).
//
// # Design
//
// Ownership flows strictly parent to child; the child's parent link and the
// ID index are non-owning back-references. [Tree.Dispose] exists to break
// those reference cycles at teardown so the whole structure can be
// reclaimed.
//
// Every fallible operation reports failure through its return value (nil or
// false) and never panics; diagnostics are advisory log lines that never
// block the operation. This keeps the tree usable from UI event handlers
// where a rejected operation is normal control flow, not an error.
//
// # Basic usage
//
//	t := tree.New("menu-bar", nil)
//	file := t.AddNode("file-menu", "")           // under root
//	recent := t.AddNode("recent-files", file.ID())
//
//	t.Apply(recent.ID(), tree.RelSiblingsOnly, true, func(n *tree.Node[string]) {
//	    // close sibling menus, etc.
//	})
//
// # Concurrency
//
// Tree is single-threaded by contract: all mutation and traversal must be
// externally serialized. There are no internal suspension points, so every
// operation is atomic with respect to every other.
package tree
