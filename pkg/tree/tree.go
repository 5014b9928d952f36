package tree

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DeleteStrategy controls what happens to a removed node's descendants.
type DeleteStrategy int

const (
	// StrategyRecursive removes the entire subtree rooted at the node.
	// After removal, no descendant of the node remains in the index.
	StrategyRecursive DeleteStrategy = iota

	// StrategyOrphan detaches the removed node's direct children instead of
	// deleting them: their parent links are cleared, but they (and their own
	// subtrees) stay in the index, unreachable from root. This is a
	// deliberate exception to the index/graph consistency invariant, used
	// when detached elements may be re-parented later.
	StrategyOrphan
)

// String returns the strategy name as used in configuration files.
func (s DeleteStrategy) String() string {
	if s == StrategyOrphan {
		return "orphan"
	}
	return "recursive"
}

// ParseStrategy converts a configuration string to a DeleteStrategy.
// Unknown values report false and default to StrategyRecursive.
func ParseStrategy(s string) (DeleteStrategy, bool) {
	switch s {
	case "recursive", "":
		return StrategyRecursive, true
	case "orphan":
		return StrategyOrphan, true
	}
	return StrategyRecursive, false
}

// Config carries construction-time options for a [Tree].
// The zero value (or a nil pointer) gives a recursive-delete tree with a
// generated root ID, UUID-based ID allocation, and the default logger.
type Config struct {
	// Strategy is the default deletion strategy used by [Tree.RemoveNode].
	Strategy DeleteStrategy

	// RootID is the identifier for the root node. Empty means generated.
	RootID string

	// Logger receives diagnostics (ID collisions, rejected operations).
	// Nil means [log.Default].
	Logger *log.Logger

	// NewID produces fresh node identifiers. Nil means [uuid.NewString].
	// The allocator is called again if a produced ID collides, so it does
	// not need to guarantee uniqueness, only eventual freshness.
	NewID func() string
}

// Tree owns a root [Node] and a flat index mapping IDs to nodes. The index
// mirrors the parent/child graph for every attached node; under
// [StrategyOrphan] it may additionally hold detached nodes, so its size is
// an upper bound on the number of nodes reachable from root.
//
// All fallible operations signal failure through their return value (nil
// node or false) rather than panicking; diagnostics go to the configured
// logger and never block the operation. Tree is not safe for concurrent
// use without external synchronization.
type Tree[T any] struct {
	root     *Node[T]
	nodes    map[string]*Node[T]
	strategy DeleteStrategy
	logger   *log.Logger
	newID    func() string
}

// New creates a tree whose root holds rootData. The root lives for the
// tree's entire lifetime: it can never be removed or moved.
// cfg may be nil for defaults.
func New[T any](rootData T, cfg *Config) *Tree[T] {
	if cfg == nil {
		cfg = &Config{}
	}
	t := &Tree[T]{
		nodes:    make(map[string]*Node[T]),
		strategy: cfg.Strategy,
		logger:   cfg.Logger,
		newID:    cfg.NewID,
	}
	if t.logger == nil {
		t.logger = log.Default()
	}
	if t.newID == nil {
		t.newID = uuid.NewString
	}

	rootID := cfg.RootID
	if rootID == "" {
		rootID = t.newID()
	}
	t.root = &Node[T]{id: rootID, data: rootData, root: true}
	t.nodes[rootID] = t.root
	return t
}

// Root returns the root node.
func (t *Tree[T]) Root() *Node[T] { return t.root }

// Node returns the node with the given ID and true, or nil and false if the
// ID is not in the index. Under [StrategyOrphan] this includes detached
// nodes no longer reachable from root.
func (t *Tree[T]) Node(id string) (*Node[T], bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Size returns the number of indexed nodes, including the root.
// Under [StrategyOrphan] this may exceed the count reachable from root.
func (t *Tree[T]) Size() int { return len(t.nodes) }

// Nodes returns all indexed nodes in unspecified order.
func (t *Tree[T]) Nodes() []*Node[T] {
	nodes := make([]*Node[T], 0, len(t.nodes))
	for _, n := range t.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// Strategy returns the tree's default deletion strategy.
func (t *Tree[T]) Strategy() DeleteStrategy { return t.strategy }

// AddNode creates a node holding data under the parent with ID parentID and
// returns it. An empty parentID attaches the node under root. Returns nil
// without mutation if parentID does not resolve. The node's ID is freshly
// allocated.
func (t *Tree[T]) AddNode(data T, parentID string) *Node[T] {
	return t.AddNodeWithID(t.allocID(), data, parentID)
}

// AddNodeWithID is [Tree.AddNode] with a caller-supplied ID hint. If the
// hint collides with an existing ID the hint is discarded and a fresh ID is
// allocated; the collision is logged but never fails the call. An empty
// hint behaves like [Tree.AddNode].
func (t *Tree[T]) AddNodeWithID(id string, data T, parentID string) *Node[T] {
	parent := t.root
	if parentID != "" {
		p, ok := t.nodes[parentID]
		if !ok {
			t.logger.Debug("add rejected: unknown parent", "parent", parentID)
			return nil
		}
		parent = p
	}

	if id == "" {
		id = t.allocID()
	} else if _, taken := t.nodes[id]; taken {
		fresh := t.allocID()
		t.logger.Warn("node ID already in use, generated a fresh one", "hint", id, "id", fresh)
		id = fresh
	}

	n := &Node[T]{id: id, data: data, parent: parent}
	parent.children = append(parent.children, n)
	t.nodes[id] = n
	return n
}

// RemoveNode removes the node with the given ID using the tree's default
// deletion strategy. Returns false without mutation if the ID is unknown or
// denotes the root.
//
// Removal is purely structural: it never inspects or mutates payloads.
// Closing open floating elements before their node disappears is the
// coordinator's job, not the tree's.
func (t *Tree[T]) RemoveNode(id string) bool {
	return t.RemoveNodeWithStrategy(id, t.strategy)
}

// RemoveNodeWithStrategy is [Tree.RemoveNode] with an explicit strategy,
// overriding the tree default for this one call.
func (t *Tree[T]) RemoveNodeWithStrategy(id string, strategy DeleteStrategy) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	if n.root {
		t.logger.Debug("remove rejected: root is not removable", "id", id)
		return false
	}

	switch strategy {
	case StrategyOrphan:
		for _, child := range n.children {
			child.parent = nil
		}
		n.children = nil
	default:
		// Post-order: drop descendants from the index before the node itself.
		for _, desc := range t.Traverse(OrderDFS, n)[1:] {
			delete(t.nodes, desc.id)
			desc.parent = nil
			desc.children = nil
		}
		n.children = nil
	}

	delete(t.nodes, id)
	if n.parent != nil {
		n.parent.detachChild(n)
	}
	n.parent = nil
	return true
}

// MoveNode re-parents the node with the given ID under newParentID,
// preserving the subtree beneath it unchanged. The node is appended to the
// new parent's children, so it becomes last in visual/traversal order.
//
// Returns false without mutation if the node is root, the node and new
// parent are the same, the new parent does not resolve, or the new parent
// is a descendant of the node (which would create a cycle).
func (t *Tree[T]) MoveNode(id, newParentID string) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	if n.root {
		t.logger.Debug("move rejected: root is not movable", "id", id)
		return false
	}
	if id == newParentID {
		t.logger.Debug("move rejected: node cannot be its own parent", "id", id)
		return false
	}
	parent, ok := t.nodes[newParentID]
	if !ok {
		return false
	}
	if n.isAncestorOf(parent) {
		t.logger.Debug("move rejected: target parent is a descendant", "id", id, "parent", newParentID)
		return false
	}

	if n.parent != nil {
		n.parent.detachChild(n)
	}
	parent.children = append(parent.children, n)
	n.parent = parent
	return true
}

// Dispose clears the index and severs all parent/child links so the
// structure can be reclaimed once callers drop their own node handles.
// The tree is unusable afterwards; this is a teardown operation, not a
// reset.
func (t *Tree[T]) Dispose() {
	for _, n := range t.nodes {
		n.parent = nil
		n.children = nil
	}
	t.nodes = make(map[string]*Node[T])
	t.root = nil
}

// allocID returns a fresh ID, retrying on the (unlikely) case that the
// allocator produced one already in use.
func (t *Tree[T]) allocID() string {
	for {
		id := t.newID()
		if _, taken := t.nodes[id]; !taken {
			return id
		}
	}
}
