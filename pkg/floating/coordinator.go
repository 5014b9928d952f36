package floating

import (
	"maps"

	"github.com/charmbracelet/log"

	"github.com/sherif414/floattree/pkg/observability"
	"github.com/sherif414/floattree/pkg/tree"
)

// Panel is the per-node payload: the state of one floating element.
// Panels are owned by their node; external code mutates Open only through
// [Coordinator.SetOpen] so that subscribers and cascades stay consistent.
type Panel struct {
	// Open is the element's visibility flag. Two states, no intermediate:
	// closed and open.
	Open bool

	// Label is a display name for inspection and rendering. Optional.
	Label string

	// Meta holds arbitrary key-value data (anchor element hints, z-order
	// overrides). Never consulted by the coordinator itself.
	Meta map[string]any
}

// Clone returns a shallow copy of the panel with its own Meta map, for
// callers that snapshot state without aliasing the live payload.
func (p *Panel) Clone() *Panel {
	out := &Panel{Open: p.Open, Label: p.Label}
	if p.Meta != nil {
		out.Meta = maps.Clone(p.Meta)
	}
	return out
}

// Config carries construction-time options for a [Coordinator].
// The zero value (or nil) gives recursive deletion, a generated root ID,
// and the default logger.
type Config struct {
	// RootID is the identifier for the root node. Empty means generated.
	RootID string

	// RootLabel is the root panel's display label.
	RootLabel string

	// Strategy is the deletion strategy used by [Coordinator.Unregister].
	Strategy tree.DeleteStrategy

	// Logger receives diagnostics. Nil means [log.Default].
	Logger *log.Logger
}

// subscriber is one registered open-state observer.
type subscriber struct {
	token int
	fn    func(open bool)
}

// Coordinator manages open/closed visibility state across a hierarchy of
// floating elements. It composes a [tree.Tree] of [Panel] payloads with a
// per-node subscription registry and adds the cascading behavior: when a
// node transitions to closed, every currently open descendant is forced
// closed through the same entry point external callers use, so observers
// fire exactly once per affected node, in traversal order.
//
// All operations on unknown node IDs are no-ops or return sentinel values;
// nothing in this type panics on bad input. Like the underlying tree, a
// Coordinator is single-threaded: callers must serialize access.
type Coordinator struct {
	tree    *tree.Tree[*Panel]
	subs    map[string][]subscriber
	nextSub int

	// Side-effect queue for the two-phase tick: cascades triggered while a
	// batch (or another cascade drain) is in flight are deferred until the
	// structural work of the current tick has completed.
	queue      []string
	batchDepth int
	draining   bool

	logger *log.Logger
}

// New creates a coordinator whose root panel starts closed.
// cfg may be nil for defaults.
func New(cfg *Config) *Coordinator {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{
		tree: tree.New(&Panel{Label: cfg.RootLabel}, &tree.Config{
			Strategy: cfg.Strategy,
			RootID:   cfg.RootID,
			Logger:   logger,
		}),
		subs:   make(map[string][]subscriber),
		logger: logger,
	}
}

// Tree exposes the underlying structure for rendering layers that need the
// hierarchy itself (DOM nesting, portal placement). Structural mutations
// should still go through Register/Unregister so subscriptions stay in sync.
func (c *Coordinator) Tree() *tree.Tree[*Panel] { return c.tree }

// Register creates a node for a floating element under parentID (empty for
// root) and returns it, or nil if the parent does not resolve. The new
// element starts closed.
func (c *Coordinator) Register(label, parentID string) *tree.Node[*Panel] {
	return c.tree.AddNode(&Panel{Label: label}, parentID)
}

// RegisterWithID is [Coordinator.Register] with an ID hint. A colliding
// hint is regenerated, matching [tree.Tree.AddNodeWithID].
func (c *Coordinator) RegisterWithID(id, label, parentID string) *tree.Node[*Panel] {
	return c.tree.AddNodeWithID(id, &Panel{Label: label}, parentID)
}

// Unregister removes the element's node using the coordinator's deletion
// strategy and tears down subscriptions for every node that left the index.
// Returns false if the ID is unknown or denotes the root.
//
// Payload state is not consulted: a removed-while-open subtree simply
// disappears. Callers that want close notifications first should SetOpen
// false before unregistering, inside one [Coordinator.Batch].
func (c *Coordinator) Unregister(id string) bool {
	if !c.tree.RemoveNode(id) {
		return false
	}
	// Drop subscriptions for nodes no longer indexed. Under the orphan
	// strategy detached children stay indexed and keep their subscribers.
	for subID := range c.subs {
		if _, ok := c.tree.Node(subID); !ok {
			delete(c.subs, subID)
		}
	}
	return true
}

// Subscribe registers fn to run synchronously whenever the node's open flag
// changes through [Coordinator.SetOpen]. Returns a cancel function and true,
// or a nil cancel and false for unknown IDs. Subscriptions are torn down
// automatically when the node is unregistered.
func (c *Coordinator) Subscribe(id string, fn func(open bool)) (cancel func(), ok bool) {
	if _, exists := c.tree.Node(id); !exists {
		return nil, false
	}
	c.nextSub++
	token := c.nextSub
	c.subs[id] = append(c.subs[id], subscriber{token: token, fn: fn})
	return func() {
		list := c.subs[id]
		for i, s := range list {
			if s.token == token {
				c.subs[id] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}, true
}

// SetOpen transitions the node's open flag. Returns false for unknown IDs.
//
// Setting a flag to its current value is a no-op (still returns true).
// On an actual change the node's subscribers are notified synchronously;
// a transition to closed additionally schedules the cascade that forces
// every currently open descendant closed through this same entry point.
// The triggering node is never revisited by its own cascade.
func (c *Coordinator) SetOpen(id string, open bool) bool {
	n, ok := c.tree.Node(id)
	if !ok {
		return false
	}
	if n.Data().Open == open {
		return true
	}

	n.Data().Open = open
	c.notify(id, open)
	observability.State().OnOpenChanged(id, open)

	if !open {
		c.queue = append(c.queue, id)
		c.drain()
	}
	return true
}

// IsOpen reports whether the node exists and is currently open.
func (c *Coordinator) IsOpen(id string) bool {
	n, ok := c.tree.Node(id)
	return ok && n.Data().Open
}

// IsTopmost reports whether the node is open and no ancestor on its parent
// chain is open. Topmost is the element that should receive interaction
// priority and the highest z-order. Unknown and closed nodes report false.
func (c *Coordinator) IsTopmost(id string) bool {
	n, ok := c.tree.Node(id)
	if !ok || !n.Data().Open {
		return false
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Data().Open {
			return false
		}
	}
	return true
}

// OpenNodes returns every node whose panel is open, in index order (which
// is unspecified).
func (c *Coordinator) OpenNodes() []*tree.Node[*Panel] {
	var out []*tree.Node[*Panel]
	for _, n := range c.tree.Nodes() {
		if n.Data().Open {
			out = append(out, n)
		}
	}
	return out
}

// Batch runs fn with cascade draining deferred until fn returns. Use it
// when a structural mutation and a state change belong to the same logical
// tick - for example removing a node and closing its parent - so that no
// cascade can observe a half-applied tick or touch nodes about to vanish.
func (c *Coordinator) Batch(fn func()) {
	c.batchDepth++
	fn()
	c.batchDepth--
	c.drain()
}

// notify invokes the node's subscribers. The subscriber list is copied
// first so that callbacks may cancel themselves or add new subscriptions.
func (c *Coordinator) notify(id string, open bool) {
	list := c.subs[id]
	if len(list) == 0 {
		return
	}
	snapshot := make([]subscriber, len(list))
	copy(snapshot, list)
	for _, s := range snapshot {
		s.fn(open)
	}
}

// drain runs pending cascades to completion. Reentrant calls (a cascade
// closing a descendant re-enters SetOpen) and calls inside a batch return
// immediately; the outermost frame processes the whole queue, so effects
// scheduled within one tick run only after that tick's structural and
// direct state work has finished.
func (c *Coordinator) drain() {
	if c.draining || c.batchDepth > 0 {
		return
	}
	c.draining = true
	defer func() { c.draining = false }()

	for len(c.queue) > 0 {
		id := c.queue[0]
		c.queue = c.queue[1:]

		// The node may have been removed in the same tick that closed it.
		n, ok := c.tree.Node(id)
		if !ok {
			continue
		}

		observability.State().OnCascadeStart(id)
		closed := 0
		for _, desc := range c.tree.Traverse(tree.OrderDFS, n)[1:] {
			if desc.Data().Open {
				c.SetOpen(desc.ID(), false)
				closed++
			}
		}
		observability.State().OnCascadeComplete(id, closed)
	}
}
