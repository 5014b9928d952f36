// Package floating coordinates visibility state across nested floating
// elements (menus, submenus, nested popovers).
//
// A [Coordinator] specializes the generic [tree] package: each node's
// payload is a [Panel] carrying an open flag, and the coordinator layers
// three behaviors on top of the structure:
//
//   - Cascading close: a node transitioning to closed forces every
//     currently open descendant closed, through the same state entry point
//     external callers use, so each affected node's observers fire exactly
//     once, in traversal order.
//   - Topmost detection: [Coordinator.IsTopmost] identifies the open node
//     with no open ancestor - the element that should win interaction
//     priority and z-order.
//   - Bulk queries: [Coordinator.OpenNodes] and the tree's relationship
//     engine let interaction handlers express rules like "close siblings
//     when opening a menu" without walking the tree by hand.
//
// # Tick ordering
//
// Cascades are queued side effects, drained only after the current tick's
// structural mutations and direct flag writes have completed. Group a
// removal with a state change in one [Coordinator.Batch] and the cascade is
// guaranteed not to run against nodes removed in that same tick.
//
// Positioning, style computation, and input interpretation are external
// collaborators: they read the tree and the open flags, and write state
// back exclusively through [Coordinator.SetOpen].
package floating
