package tree

import (
	"slices"
	"testing"
)

// relTree builds the fixture used across relationship tests:
//
//	root
//	├── m1
//	│   ├── s1
//	│   │   └── s2
//	│   └── s3
//	└── m2
func relTree(t *testing.T) *Tree[string] {
	t.Helper()
	tr := newTestTree(StrategyRecursive)
	build(t, tr, [][2]string{{"m1", ""}, {"s1", "m1"}, {"s2", "s1"}, {"s3", "m1"}, {"m2", ""}})
	return tr
}

func sortedIDs[T any](nodes []*Node[T]) []string {
	out := ids(nodes)
	slices.Sort(out)
	return out
}

func TestRelated(t *testing.T) {
	tests := []struct {
		name   string
		target string
		rel    Relationship
		want   []string // sorted
	}{
		{"ancestors only", "s2", RelAncestorsOnly, []string{"m1", "root", "s1"}},
		{"ancestors of top-level", "m1", RelAncestorsOnly, []string{"root"}},
		{"siblings only", "s1", RelSiblingsOnly, []string{"s3"}},
		{"siblings of root", "root", RelSiblingsOnly, nil},
		{"descendants only", "m1", RelDescendantsOnly, []string{"s1", "s2", "s3"}},
		{"children only", "m1", RelChildrenOnly, []string{"s1", "s3"}},
		{"self and ancestors", "s1", RelSelfAndAncestors, []string{"m1", "root", "s1"}},
		{"self and children", "m1", RelSelfAndChildren, []string{"m1", "s1", "s3"}},
		{"self and descendants", "m1", RelSelfAndDescendants, []string{"m1", "s1", "s2", "s3"}},
		{"self and siblings", "s1", RelSelfAndSiblings, []string{"s1", "s3"}},
		{"self ancestors and children", "s1", RelSelfAncestorsAndChildren, []string{"m1", "root", "s1", "s2"}},
		{"full branch", "s1", RelFullBranch, []string{"m1", "root", "s1", "s2"}},
		{"full branch of mid node", "m1", RelFullBranch, []string{"m1", "root", "s1", "s2", "s3"}},
		{"all except branch", "s1", RelAllExceptBranch, []string{"m2", "s3"}},
		{"unknown target", "missing", RelFullBranch, nil},
		{"unknown relationship", "s1", Relationship("cousins"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := relTree(t)
			got := sortedIDs(tr.Related(tt.target, tt.rel))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Related(%q, %q) = %v, want %v", tt.target, tt.rel, got, tt.want)
			}
		})
	}
}

func TestRelatedOrder(t *testing.T) {
	tr := relTree(t)

	// Branch sets come back root-first then DFS through the subtree.
	got := ids(tr.Related("s1", RelFullBranch))
	want := []string{"root", "m1", "s1", "s2"}
	if !slices.Equal(got, want) {
		t.Errorf("full-branch order = %v, want %v", got, want)
	}

	// Ancestors walk from the parent up to root.
	got = ids(tr.Related("s2", RelAncestorsOnly))
	want = []string{"s1", "m1", "root"}
	if !slices.Equal(got, want) {
		t.Errorf("ancestors order = %v, want %v", got, want)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		rel        Relationship
		toMatching bool
		want       []string // sorted IDs fn is invoked on
	}{
		{"matching siblings", "s1", RelSiblingsOnly, true, []string{"s3"}},
		{"inverted siblings", "s1", RelSiblingsOnly, false, []string{"m1", "m2", "root", "s1", "s2"}},
		{"matching full branch", "m1", RelFullBranch, true, []string{"m1", "root", "s1", "s2", "s3"}},
		{"all except branch", "m1", RelAllExceptBranch, true, []string{"m2"}},
		// Complement of the already-complemented set: the full branch itself.
		{"inverted all except branch", "m1", RelAllExceptBranch, false, []string{"m1", "root", "s1", "s2", "s3"}},
		{"unknown target is a no-op", "missing", RelSiblingsOnly, true, nil},
		{"unknown relationship is a no-op", "s1", Relationship("cousins"), true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := relTree(t)
			var visited []string
			tr.Apply(tt.target, tt.rel, tt.toMatching, func(n *Node[string]) {
				visited = append(visited, n.ID())
			})
			slices.Sort(visited)
			if len(visited) == 0 && len(tt.want) == 0 {
				return
			}
			if !slices.Equal(visited, tt.want) {
				t.Errorf("Apply visited %v, want %v", visited, tt.want)
			}
		})
	}
}

func TestApplyVisitsEachNodeOnce(t *testing.T) {
	tr := relTree(t)
	counts := make(map[string]int)
	tr.Apply("m1", RelFullBranch, true, func(n *Node[string]) {
		counts[n.ID()]++
	})
	for id, c := range counts {
		if c != 1 {
			t.Errorf("node %s visited %d times, want 1", id, c)
		}
	}
}

func TestRelatedSiblingsExcludeTargetAndParent(t *testing.T) {
	tr := newTestTree(StrategyRecursive)
	build(t, tr, [][2]string{{"p", ""}, {"target", "p"}, {"sib1", "p"}, {"sib2", "p"}})

	got := sortedIDs(tr.Related("target", RelSiblingsOnly))
	want := []string{"sib1", "sib2"}
	if !slices.Equal(got, want) {
		t.Errorf("siblings = %v, want %v", got, want)
	}
}
