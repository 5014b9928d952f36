package render

import (
	"strings"
	"testing"

	"github.com/sherif414/floattree/pkg/snapshot"
)

func testSnapshot() snapshot.Snapshot {
	return snapshot.Snapshot{Nodes: []snapshot.Node{
		{ID: "app", Label: "App"},
		{ID: "menu", ParentID: "app", Label: "File", Open: true},
		{ID: "sub", ParentID: "menu", Label: "Recent", Open: true},
		{ID: "edit", ParentID: "app", Label: "Edit"},
	}}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testSnapshot(), Options{})

	wantFragments := []string{
		"digraph floattree {",
		`"app" -> "menu";`,
		`"menu" -> "sub";`,
		`"app" -> "edit";`,
		`label="File"`,
	}
	for _, frag := range wantFragments {
		if !strings.Contains(dot, frag) {
			t.Errorf("DOT missing %q:\n%s", frag, dot)
		}
	}
}

func TestToDOTStyling(t *testing.T) {
	dot := ToDOT(testSnapshot(), Options{})

	for _, line := range strings.Split(dot, "\n") {
		switch {
		case strings.Contains(line, `"menu" [`):
			// menu is topmost: open with no open ancestor.
			if !strings.Contains(line, "peripheries=2") {
				t.Errorf("topmost node not double-bordered: %s", line)
			}
		case strings.Contains(line, `"sub" [`):
			if !strings.Contains(line, "fillcolor=lightgoldenrod1") || strings.Contains(line, "peripheries") {
				t.Errorf("open non-topmost node styled wrong: %s", line)
			}
		case strings.Contains(line, `"edit" [`):
			if !strings.Contains(line, "grey") {
				t.Errorf("closed node not dimmed: %s", line)
			}
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	snap := testSnapshot()
	snap.Nodes[1].Meta = map[string]any{"anchor": "top-start"}

	dot := ToDOT(snap, Options{Detailed: true})
	if !strings.Contains(dot, "id: menu") {
		t.Error("detailed DOT missing node ID line")
	}
	if !strings.Contains(dot, "anchor: top-start") {
		t.Error("detailed DOT missing metadata line")
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(snapshot.Snapshot{}, Options{})
	if !strings.HasPrefix(dot, "digraph floattree {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty snapshot produced malformed DOT:\n%s", dot)
	}
}
