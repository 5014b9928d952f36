package tree

import "slices"

// Node is a single addressable unit in a [Tree]. It holds a typed payload,
// a back-reference to its parent, and an ordered list of children. Child
// order is significant: it determines traversal order, which in the
// floating-UI use case maps to tab and visual order.
//
// Nodes are created only through [Tree.AddNode] or [Tree.AddNodeWithID] -
// the zero value is not usable and nodes cannot be constructed standalone
// and attached later. A node handle is invalidated once the node has been
// removed from its tree; holding on to it past removal is a caller bug.
type Node[T any] struct {
	id       string
	data     T
	parent   *Node[T]
	children []*Node[T]
	root     bool
}

// ID returns the node's identifier. IDs are unique within a tree instance
// and immutable after creation.
func (n *Node[T]) ID() string { return n.id }

// Data returns the node's payload.
func (n *Node[T]) Data() T { return n.data }

// SetData replaces the node's payload wholesale.
// For structured payloads that should be merged rather than replaced,
// use [Node.UpdateData] with a merge function.
func (n *Node[T]) SetData(data T) { n.data = data }

// UpdateData applies fn to the current payload and stores the result.
// This is the merge-or-replace entry point: fn can return a shallow-merged
// copy for struct/map payloads or simply a new value for scalar ones.
func (n *Node[T]) UpdateData(fn func(T) T) { n.data = fn(n.data) }

// Parent returns the node's parent, or nil for the root and for nodes
// orphaned by [StrategyOrphan] removal. The parent link is a non-owning
// back-reference: ownership flows strictly parent to child.
func (n *Node[T]) Parent() *Node[T] { return n.parent }

// Children returns a copy of the node's children in insertion order.
// Modifying the returned slice does not affect the tree.
func (n *Node[T]) Children() []*Node[T] { return slices.Clone(n.children) }

// ChildCount returns the number of direct children.
func (n *Node[T]) ChildCount() int { return len(n.children) }

// IsRoot reports whether this node was designated root at tree construction.
// An orphaned node with no parent is not root.
func (n *Node[T]) IsRoot() bool { return n.root }

// IsLeaf reports whether the node has no children.
func (n *Node[T]) IsLeaf() bool { return len(n.children) == 0 }

// detachChild removes child from n's children list, preserving the order
// of the remaining children. No-op if child is not present.
func (n *Node[T]) detachChild(child *Node[T]) {
	n.children = slices.DeleteFunc(n.children, func(c *Node[T]) bool { return c == child })
}

// isAncestorOf reports whether n appears on candidate's parent chain.
func (n *Node[T]) isAncestorOf(candidate *Node[T]) bool {
	for p := candidate.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}
