package tree

// Relationship names a closed-set rule for selecting nodes structurally
// related to a target node. The set is fixed: there is no registration
// mechanism for new relationships.
type Relationship string

const (
	// RelAncestorsOnly selects the strict ancestors, excluding the target.
	RelAncestorsOnly Relationship = "ancestors-only"

	// RelSiblingsOnly selects same-parent nodes, excluding the target.
	RelSiblingsOnly Relationship = "siblings-only"

	// RelDescendantsOnly selects the strict subtree, excluding the target.
	RelDescendantsOnly Relationship = "descendants-only"

	// RelChildrenOnly selects the immediate children.
	RelChildrenOnly Relationship = "children-only"

	// RelSelfAndAncestors selects the target plus its ancestors.
	RelSelfAndAncestors Relationship = "self-and-ancestors"

	// RelSelfAndChildren selects the target plus its immediate children.
	RelSelfAndChildren Relationship = "self-and-children"

	// RelSelfAndDescendants selects the target plus its subtree.
	RelSelfAndDescendants Relationship = "self-and-descendants"

	// RelSelfAndSiblings selects the target plus its same-parent nodes.
	RelSelfAndSiblings Relationship = "self-and-siblings"

	// RelSelfAncestorsAndChildren selects the target, its ancestors, and its
	// immediate children.
	RelSelfAncestorsAndChildren Relationship = "self-ancestors-and-children"

	// RelFullBranch selects the target, all its ancestors, and all its
	// descendants: the complete root-to-leaf path family through the target.
	RelFullBranch Relationship = "full-branch"

	// RelAllExceptBranch selects every indexed node not in the full branch.
	RelAllExceptBranch Relationship = "all-except-branch"
)

// Related computes the node set the relationship selects for the target ID.
// An unknown ID returns nil silently; an unknown relationship returns nil
// with a diagnostic. Neither case panics.
//
// Sets that derive from traversal (descendants, branches) are returned in
// DFS pre-order; ancestor sets walk from the target up to root;
// RelAllExceptBranch follows index order, which is unspecified.
func (t *Tree[T]) Related(id string, rel Relationship) []*Node[T] {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}

	switch rel {
	case RelAncestorsOnly:
		return t.ancestors(n)
	case RelSiblingsOnly:
		return t.siblings(n)
	case RelDescendantsOnly:
		return t.Traverse(OrderDFS, n)[1:]
	case RelChildrenOnly:
		return n.Children()
	case RelSelfAndAncestors:
		return append([]*Node[T]{n}, t.ancestors(n)...)
	case RelSelfAndChildren:
		return append([]*Node[T]{n}, n.children...)
	case RelSelfAndDescendants:
		return t.Traverse(OrderDFS, n)
	case RelSelfAndSiblings:
		return append([]*Node[T]{n}, t.siblings(n)...)
	case RelSelfAncestorsAndChildren:
		set := append([]*Node[T]{n}, t.ancestors(n)...)
		return append(set, n.children...)
	case RelFullBranch:
		return t.fullBranch(n)
	case RelAllExceptBranch:
		return t.complement(t.fullBranch(n))
	}

	t.logger.Warn("unknown relationship", "relationship", string(rel))
	return nil
}

// Apply invokes fn on the nodes the relationship selects for the target ID
// (toMatching true, the usual case) or on every indexed node outside that
// set (toMatching false). Unknown IDs and unknown relationships are no-ops,
// with the same diagnostics as [Tree.Related].
//
// RelAllExceptBranch is itself a complement, so it is never routed through
// the generic inversion: with toMatching false it applies fn to the full
// branch (the complement of the already-complemented set) rather than
// double-inverting back to itself.
func (t *Tree[T]) Apply(id string, rel Relationship, toMatching bool, fn func(*Node[T])) {
	if !toMatching && rel == RelAllExceptBranch {
		rel = RelFullBranch
		toMatching = true
	}

	if _, ok := t.nodes[id]; !ok {
		return
	}
	set := t.Related(id, rel)
	if set == nil && !isKnownRelationship(rel) {
		return
	}
	if !toMatching {
		set = t.complement(set)
	}
	for _, n := range set {
		fn(n)
	}
}

func isKnownRelationship(rel Relationship) bool {
	switch rel {
	case RelAncestorsOnly, RelSiblingsOnly, RelDescendantsOnly, RelChildrenOnly,
		RelSelfAndAncestors, RelSelfAndChildren, RelSelfAndDescendants,
		RelSelfAndSiblings, RelSelfAncestorsAndChildren, RelFullBranch,
		RelAllExceptBranch:
		return true
	}
	return false
}

// ancestors returns the strict ancestor chain from n's parent up to root.
func (t *Tree[T]) ancestors(n *Node[T]) []*Node[T] {
	var out []*Node[T]
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// siblings returns n's same-parent nodes, excluding n itself.
// Root and orphaned nodes have no siblings.
func (t *Tree[T]) siblings(n *Node[T]) []*Node[T] {
	if n.parent == nil {
		return nil
	}
	var out []*Node[T]
	for _, c := range n.parent.children {
		if c != n {
			out = append(out, c)
		}
	}
	return out
}

// fullBranch returns n's ancestors (root first), n, then n's descendants in
// DFS order.
func (t *Tree[T]) fullBranch(n *Node[T]) []*Node[T] {
	up := t.ancestors(n)
	out := make([]*Node[T], 0, len(up)+1)
	for i := len(up) - 1; i >= 0; i-- {
		out = append(out, up[i])
	}
	return append(out, t.Traverse(OrderDFS, n)...)
}

// complement returns every indexed node not in set, in index order.
func (t *Tree[T]) complement(set []*Node[T]) []*Node[T] {
	in := make(map[*Node[T]]struct{}, len(set))
	for _, n := range set {
		in[n] = struct{}{}
	}
	var out []*Node[T]
	for _, n := range t.nodes {
		if _, ok := in[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}
