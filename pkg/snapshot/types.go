package snapshot

import (
	"errors"
	"fmt"

	"github.com/sherif414/floattree/pkg/floating"
	"github.com/sherif414/floattree/pkg/tree"
)

var (
	// ErrNoRoot is returned when a snapshot has no node with an empty
	// parent ID.
	ErrNoRoot = errors.New("snapshot has no root node")

	// ErrMultipleRoots is returned when more than one node has an empty
	// parent ID. A snapshot describes exactly one hierarchy.
	ErrMultipleRoots = errors.New("snapshot has multiple root nodes")

	// ErrDuplicateNodeID is returned when two snapshot nodes share an ID.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownParent is returned when a node references a parent ID that
	// is not present in the snapshot.
	ErrUnknownParent = errors.New("unknown parent node")
)

// =============================================================================
// Snapshot - Hierarchy Serialization
// =============================================================================

// Snapshot is the canonical serialization format for a coordinated
// hierarchy. Used for files, API responses, and the snapshot stores.
//
// Nodes appear parent-before-child (BFS order from root), so a snapshot can
// be replayed front to back when rebuilding a coordinator. The format is
// designed for round-trip fidelity: export → import → export produces
// identical results.
type Snapshot struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
}

// Node is one hierarchy entry. The root is the single node with an empty
// ParentID.
type Node struct {
	ID       string         `json:"id" bson:"id"`
	ParentID string         `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Label    string         `json:"label,omitempty" bson:"label,omitempty"`
	Open     bool           `json:"open,omitempty" bson:"open,omitempty"`
	Meta     map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// IsRoot reports whether this entry describes the hierarchy root.
func (n Node) IsRoot() bool { return n.ParentID == "" }

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// NodeCount returns the number of nodes in the snapshot.
func (s Snapshot) NodeCount() int { return len(s.Nodes) }

// OpenIDs returns the IDs of all open nodes, in snapshot order.
func (s Snapshot) OpenIDs() []string {
	var out []string
	for _, n := range s.Nodes {
		if n.Open {
			out = append(out, n.ID)
		}
	}
	return out
}

// TopmostIDs returns the IDs of open nodes with no open ancestor, in
// snapshot order. With a single open subtree this is one element; disjoint
// open subtrees yield one topmost node each.
func (s Snapshot) TopmostIDs() []string {
	byID := make(map[string]Node, len(s.Nodes))
	for _, n := range s.Nodes {
		byID[n.ID] = n
	}

	var out []string
	for _, n := range s.Nodes {
		if !n.Open {
			continue
		}
		topmost := true
		for p, ok := byID[n.ParentID]; ok; p, ok = byID[p.ParentID] {
			if p.Open {
				topmost = false
				break
			}
		}
		if topmost {
			out = append(out, n.ID)
		}
	}
	return out
}

// Validate checks structural integrity: exactly one root, unique IDs, and
// every non-root parent reference resolving to a node that appears earlier
// or later in the list. Returns nil for an empty snapshot.
func (s Snapshot) Validate() error {
	if len(s.Nodes) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(s.Nodes))
	roots := 0
	for _, n := range s.Nodes {
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
		}
		seen[n.ID] = struct{}{}
		if n.IsRoot() {
			roots++
		}
	}
	if roots == 0 {
		return ErrNoRoot
	}
	if roots > 1 {
		return ErrMultipleRoots
	}

	for _, n := range s.Nodes {
		if n.IsRoot() {
			continue
		}
		if _, ok := seen[n.ParentID]; !ok {
			return fmt.Errorf("%w: node %s references %s", ErrUnknownParent, n.ID, n.ParentID)
		}
	}
	return nil
}

// =============================================================================
// Coordinator ↔ Snapshot Conversion
// =============================================================================

// FromCoordinator captures the coordinator's hierarchy and open flags.
// Nodes are emitted in BFS order from root, guaranteeing parent-before-
// child. Nodes detached by orphan-strategy removals are unreachable from
// root and therefore not captured.
func FromCoordinator(c *floating.Coordinator) Snapshot {
	nodes := c.Tree().Traverse(tree.OrderBFS, nil)
	out := Snapshot{Nodes: make([]Node, 0, len(nodes))}
	for _, n := range nodes {
		entry := Node{
			ID:    n.ID(),
			Label: n.Data().Label,
			Open:  n.Data().Open,
		}
		if p := n.Parent(); p != nil {
			entry.ParentID = p.ID()
		}
		if len(n.Data().Meta) > 0 {
			entry.Meta = n.Data().Clone().Meta
		}
		out.Nodes = append(out.Nodes, entry)
	}
	return out
}

// ToCoordinator rebuilds a coordinator from a snapshot. Open flags are
// restored directly, without passing through the state entry point, so no
// subscribers fire and no cascades run during reconstruction.
//
// Returns a validation error for malformed snapshots. An empty snapshot
// yields a fresh coordinator with a generated root.
func ToCoordinator(s Snapshot, cfg *floating.Config) (*floating.Coordinator, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if len(s.Nodes) == 0 {
		return floating.New(cfg), nil
	}

	var rootEntry Node
	for _, n := range s.Nodes {
		if n.IsRoot() {
			rootEntry = n
			break
		}
	}

	rebuilt := *deref(cfg)
	rebuilt.RootID = rootEntry.ID
	rebuilt.RootLabel = rootEntry.Label
	c := floating.New(&rebuilt)
	c.Tree().Root().Data().Meta = rootEntry.Meta

	// Snapshots are parent-before-child, but tolerate arbitrary order by
	// deferring entries whose parent has not been created yet.
	pending := make([]Node, 0, len(s.Nodes)-1)
	for _, n := range s.Nodes {
		if !n.IsRoot() {
			pending = append(pending, n)
		}
	}
	for len(pending) > 0 {
		progressed := false
		next := pending[:0]
		for _, n := range pending {
			if _, ok := c.Tree().Node(n.ParentID); !ok {
				next = append(next, n)
				continue
			}
			created := c.RegisterWithID(n.ID, n.Label, n.ParentID)
			if created == nil {
				return nil, fmt.Errorf("%w: node %s references %s", ErrUnknownParent, n.ID, n.ParentID)
			}
			created.Data().Meta = n.Meta
			progressed = true
		}
		if !progressed {
			return nil, fmt.Errorf("%w: unresolvable parent references", ErrUnknownParent)
		}
		pending = next
	}

	// Restore flags last so partially built subtrees never look open.
	for _, n := range s.Nodes {
		if node, ok := c.Tree().Node(n.ID); ok {
			node.Data().Open = n.Open
		}
	}
	return c, nil
}

func deref(cfg *floating.Config) *floating.Config {
	if cfg == nil {
		return &floating.Config{}
	}
	return cfg
}
