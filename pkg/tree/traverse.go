package tree

// Order selects a traversal order for [Tree.Traverse].
type Order int

const (
	// OrderDFS visits nodes depth-first in pre-order: a node before its
	// children, children left to right.
	OrderDFS Order = iota

	// OrderBFS visits nodes level by level, children left to right within
	// each level.
	OrderBFS
)

// Traverse returns the nodes of the subtree rooted at start in the given
// order. A nil start traverses from the tree root. The start node is always
// the first element.
//
// The result is a snapshot computed at call time, not a live view: it does
// not reflect structural mutations made after the call, and callers are
// expected to finish iterating before mutating the tree.
func (t *Tree[T]) Traverse(order Order, start *Node[T]) []*Node[T] {
	if start == nil {
		start = t.root
	}
	if start == nil {
		return nil
	}
	if order == OrderBFS {
		return traverseBFS(start)
	}
	return traverseDFS(start)
}

func traverseDFS[T any](start *Node[T]) []*Node[T] {
	var out []*Node[T]
	stack := []*Node[T]{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		// Push children in reverse so popping yields left-to-right order.
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, n.children[i])
		}
	}
	return out
}

func traverseBFS[T any](start *Node[T]) []*Node[T] {
	var out []*Node[T]
	queue := []*Node[T]{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		out = append(out, n)
		queue = append(queue, n.children...)
	}
	return out
}
