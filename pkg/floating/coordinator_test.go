package floating

import (
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sherif414/floattree/pkg/tree"
)

func newTestCoordinator(strategy tree.DeleteStrategy) *Coordinator {
	return New(&Config{
		RootID:   "root",
		Strategy: strategy,
		Logger:   log.New(io.Discard),
	})
}

// chain registers A under root, B under A, C under B and opens all three.
func chain(t *testing.T, c *Coordinator) {
	t.Helper()
	for _, pair := range [][2]string{{"A", ""}, {"B", "A"}, {"C", "B"}} {
		if n := c.RegisterWithID(pair[0], pair[0], pair[1]); n == nil {
			t.Fatalf("RegisterWithID(%q) = nil", pair[0])
		}
		if !c.SetOpen(pair[0], true) {
			t.Fatalf("SetOpen(%q, true) = false", pair[0])
		}
	}
}

func openIDs(c *Coordinator) []string {
	var out []string
	for _, n := range c.OpenNodes() {
		out = append(out, n.ID())
	}
	slices.Sort(out)
	return out
}

func TestRegister(t *testing.T) {
	c := newTestCoordinator(tree.StrategyRecursive)

	menu := c.Register("file-menu", "")
	if menu == nil {
		t.Fatal("Register under root = nil")
	}
	if menu.Data().Open {
		t.Error("fresh panel is open, want closed")
	}
	if sub := c.Register("recent", menu.ID()); sub == nil {
		t.Error("Register under existing node = nil")
	}
	if got := c.Register("lost", "missing"); got != nil {
		t.Errorf("Register under unknown parent = %v, want nil", got.ID())
	}
}

func TestSetOpen(t *testing.T) {
	c := newTestCoordinator(tree.StrategyRecursive)
	c.RegisterWithID("A", "A", "")

	if !c.SetOpen("A", true) {
		t.Fatal("SetOpen(A, true) = false")
	}
	if !c.IsOpen("A") {
		t.Error("IsOpen(A) = false after opening")
	}
	if c.SetOpen("missing", true) {
		t.Error("SetOpen on unknown ID = true, want false")
	}
	if c.IsOpen("missing") {
		t.Error("IsOpen on unknown ID = true, want false")
	}
}

func TestCascadingClose(t *testing.T) {
	c := newTestCoordinator(tree.StrategyRecursive)
	chain(t, c) // root → A → B → C, all open

	if !c.SetOpen("A", false) {
		t.Fatal("SetOpen(A, false) = false")
	}

	for _, id := range []string{"A", "B", "C"} {
		if c.IsOpen(id) {
			t.Errorf("IsOpen(%s) = true after cascade, want false", id)
		}
	}
	if got := openIDs(c); got != nil {
		t.Errorf("open nodes after cascade = %v, want none", got)
	}
}

func TestCascadeSkipsUnrelatedBranches(t *testing.T) {
	c := newTestCoordinator(tree.StrategyRecursive)
	chain(t, c)
	c.RegisterWithID("D", "D", "")
	c.SetOpen("D", true)

	c.SetOpen("B", false)

	if c.IsOpen("C") {
		t.Error("descendant C stayed open")
	}
	if !c.IsOpen("A") {
		t.Error("ancestor A was closed by descendant cascade")
	}
	if !c.IsOpen("D") {
		t.Error("sibling branch D was closed")
	}
}

func TestCascadeNotifiesOncePerNodeInOrder(t *testing.T) {
	c := newTestCoordinator(tree.StrategyRecursive)
	chain(t, c)

	var fired []string
	for _, id := range []string{"A", "B", "C"} {
		id := id
		if _, ok := c.Subscribe(id, func(open bool) {
			if !open {
				fired = append(fired, id)
			}
		}); !ok {
			t.Fatalf("Subscribe(%s) failed", id)
		}
	}

	c.SetOpen("A", false)

	want := []string{"A", "B", "C"}
	if !slices.Equal(fired, want) {
		t.Errorf("close notifications = %v, want %v", fired, want)
	}
}

func TestSetOpenNoChangeIsQuiet(t *testing.T) {
	c := newTestCoordinator(tree.StrategyRecursive)
	c.RegisterWithID("A", "A", "")

	calls := 0
	c.Subscribe("A", func(bool) { calls++ })

	if !c.SetOpen("A", false) { // already closed
		t.Fatal("SetOpen on existing node = false")
	}
	if calls != 0 {
		t.Errorf("no-change SetOpen fired %d notifications, want 0", calls)
	}
}

func TestIsTopmost(t *testing.T) {
	c := newTestCoordinator(tree.StrategyRecursive)
	c.RegisterWithID("A", "A", "")
	c.RegisterWithID("B", "B", "A")
	c.SetOpen("A", true)
	c.SetOpen("B", true)

	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"open with open ancestor", "B", false},
		{"open with no open ancestor", "A", true},
		{"closed node", "root", false},
		{"unknown node", "missing", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsTopmost(tt.id); got != tt.want {
				t.Errorf("IsTopmost(%s) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestSubscribeCancel(t *testing.T) {
	c := newTestCoordinator(tree.StrategyRecursive)
	c.RegisterWithID("A", "A", "")

	calls := 0
	cancel, ok := c.Subscribe("A", func(bool) { calls++ })
	if !ok {
		t.Fatal("Subscribe failed")
	}

	c.SetOpen("A", true)
	cancel()
	c.SetOpen("A", false)

	if calls != 1 {
		t.Errorf("calls = %d after cancel, want 1", calls)
	}

	if _, ok := c.Subscribe("missing", func(bool) {}); ok {
		t.Error("Subscribe on unknown ID = ok")
	}
}

func TestUnregisterTearsDownSubscriptions(t *testing.T) {
	c := newTestCoordinator(tree.StrategyRecursive)
	chain(t, c)

	calls := 0
	c.Subscribe("B", func(bool) { calls++ })
	c.Subscribe("C", func(bool) { calls++ })

	if !c.Unregister("B") {
		t.Fatal("Unregister(B) = false")
	}
	if _, ok := c.Tree().Node("C"); ok {
		t.Error("descendant C survived recursive unregister")
	}
	if len(c.subs) != 0 {
		t.Errorf("%d subscription entries left after unregister, want 0", len(c.subs))
	}
	if c.Unregister("root") {
		t.Error("Unregister(root) = true, want false")
	}
}

func TestUnregisterOrphanKeepsChildSubscriptions(t *testing.T) {
	c := newTestCoordinator(tree.StrategyOrphan)
	chain(t, c)

	calls := 0
	c.Subscribe("C", func(bool) { calls++ })

	c.Unregister("B")

	// C is detached from root but still indexed; its subscription survives.
	c.SetOpen("C", false)
	if calls != 1 {
		t.Errorf("orphaned node notifications = %d, want 1", calls)
	}
}

func TestBatchRemoveAndCloseSameTick(t *testing.T) {
	c := newTestCoordinator(tree.StrategyRecursive)
	chain(t, c)

	// Remove B's subtree and close A in one tick. The cascade from A must
	// not touch the removed nodes.
	c.Batch(func() {
		c.Unregister("B")
		c.SetOpen("A", false)
	})

	if c.IsOpen("A") {
		t.Error("A still open after batch")
	}
	if _, ok := c.Tree().Node("B"); ok {
		t.Error("B still present after batch")
	}
}

func TestBatchDefersCascade(t *testing.T) {
	c := newTestCoordinator(tree.StrategyRecursive)
	chain(t, c)

	c.Batch(func() {
		c.SetOpen("A", false)
		// Inside the batch the cascade has not run yet.
		if !c.IsOpen("B") {
			t.Error("cascade ran inside batch")
		}
	})

	if c.IsOpen("B") || c.IsOpen("C") {
		t.Error("cascade did not run after batch completed")
	}
}

func TestOpenNodes(t *testing.T) {
	c := newTestCoordinator(tree.StrategyRecursive)
	chain(t, c)
	c.RegisterWithID("D", "D", "")

	got := openIDs(c)
	want := []string{"A", "B", "C"}
	if !slices.Equal(got, want) {
		t.Errorf("OpenNodes = %v, want %v", got, want)
	}
}

func TestCloseSiblingsOnOpen(t *testing.T) {
	// The composed interaction-handler pattern: opening a menu closes its
	// siblings through the relationship engine.
	c := newTestCoordinator(tree.StrategyRecursive)
	c.RegisterWithID("file", "file", "")
	c.RegisterWithID("edit", "edit", "")
	c.RegisterWithID("view", "view", "")
	c.SetOpen("file", true)
	c.SetOpen("view", true)

	c.SetOpen("edit", true)
	c.Tree().Apply("edit", tree.RelSiblingsOnly, true, func(n *tree.Node[*Panel]) {
		c.SetOpen(n.ID(), false)
	})

	if got := openIDs(c); !slices.Equal(got, []string{"edit"}) {
		t.Errorf("open after close-siblings = %v, want [edit]", got)
	}
}
