package graph

import (
	"iter"
	"log/slog"
	"slices"
)

// MaxLayerIterations caps branch-layer traversal. A correctly built branch
// never comes close to this depth per layer pass; hand-wired cyclic graphs
// would otherwise iterate forever. Exceeding the cap truncates iteration
// and emits a warning.
const MaxLayerIterations = 100

// Branch is a DAG segment pinned between a fixed entry and exit sentinel.
//
// External callers always attach nodes before the exit and enumerate from
// the entry. A "leaf" is any node whose only outgoing pointer, if any, is
// the exit sentinel.
type Branch[T any] struct {
	entry *Node[T]
	exit  *Node[T]
}

// NewBranch creates an empty branch with entry wired directly to exit.
func NewBranch[T any]() *Branch[T] {
	b := &Branch[T]{
		entry: newSentinel[T](),
		exit:  newSentinel[T](),
	}
	b.entry.PointTowards(b.exit)
	return b
}

// FromNode creates a branch seeded with a single node.
func FromNode[T any](node *Node[T]) *Branch[T] {
	return NewBranch[T]().Append(node)
}

// Entry returns the entry sentinel node.
func (b *Branch[T]) Entry() *Node[T] { return b.entry }

// Exit returns the exit sentinel node.
func (b *Branch[T]) Exit() *Node[T] { return b.exit }

// Append inserts node before the exit sentinel: every node currently
// pointing at the exit is rewired to point at node instead, after which
// all leaves are pointed back at the exit.
func (b *Branch[T]) Append(node *Node[T]) *Branch[T] {
	for _, in := range slices.Clone(b.exit.incoming) {
		in.PointTowards(node)
		in.ReleasePointer(b.exit)
	}
	b.PointLeavesToExit()
	return b
}

// Extend appends each node in order.
func (b *Branch[T]) Extend(nodes ...*Node[T]) *Branch[T] {
	for _, node := range nodes {
		b.Append(node)
	}
	return b
}

// AppendAfter attaches node directly after an existing node of the branch,
// releasing the after->exit edge if present, then restores the invariant
// that all leaves point at the exit.
func (b *Branch[T]) AppendAfter(after, node *Node[T]) *Branch[T] {
	for _, in := range slices.Clone(b.exit.incoming) {
		if in == after {
			in.ReleasePointer(b.exit)
		}
	}
	after.PointTowards(node)
	b.PointLeavesToExit()
	return b
}

// Layers returns a restartable iterator over discovery layers from the
// entry sentinel towards the exit. Layer 0 is the entry itself; the exit
// sentinel is never yielded. Iteration truncates with a warning after
// MaxLayerIterations layers.
func (b *Branch[T]) Layers() iter.Seq[[]*Node[T]] {
	return func(yield func([]*Node[T]) bool) {
		current := []*Node[T]{b.entry}
		for depth := 0; len(current) > 0; depth++ {
			if depth >= MaxLayerIterations {
				slog.Warn("branch layer iteration exceeded safety cap, truncating",
					"max_iterations", MaxLayerIterations,
				)
				return
			}
			if !yield(current) {
				return
			}
			var next []*Node[T]
			for _, node := range current {
				for _, out := range node.outgoing {
					if out != b.exit {
						next = append(next, out)
					}
				}
			}
			current = dedupeNodes(next)
		}
	}
}

// Nodes returns a restartable iterator over all nodes from entry to exit
// in layer order. The entry sentinel is included; the exit sentinel is not.
func (b *Branch[T]) Nodes() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		for layer := range b.Layers() {
			for _, node := range layer {
				if !yield(node) {
					return
				}
			}
		}
	}
}

// Leaves collects all nodes whose only outgoing pointer, if any, is the
// exit sentinel, in layer discovery order without duplicates.
func (b *Branch[T]) Leaves() []*Node[T] {
	var leaves []*Node[T]
	for layer := range b.Layers() {
		for _, node := range layer {
			if b.isLeaf(node) {
				leaves = append(leaves, node)
			}
		}
	}
	return dedupeNodes(leaves)
}

func (b *Branch[T]) isLeaf(node *Node[T]) bool {
	for _, out := range node.outgoing {
		if out != b.exit {
			return false
		}
	}
	return true
}

// Contains reports whether node is reachable from the branch entry.
func (b *Branch[T]) Contains(node *Node[T]) bool {
	for candidate := range b.Nodes() {
		if candidate == node {
			return true
		}
	}
	return false
}

// Depth returns the number of layer steps from the entry to the lowest
// leaf. An empty branch has depth 0.
func (b *Branch[T]) Depth() int {
	depth := 0
	for range b.Layers() {
		depth++
	}
	return depth - 1
}

// NodesAt returns the nodes at the given layer depth. Out-of-range depths,
// including negative ones, return nil.
func (b *Branch[T]) NodesAt(depth int) []*Node[T] {
	if depth < 0 {
		return nil
	}
	current := 0
	for layer := range b.Layers() {
		if current == depth {
			return layer
		}
		current++
	}
	return nil
}

// PointLeavesToExit traverses the branch from the entry to all leaves and
// rewires every leaf to point at the exit sentinel exactly once. This
// restores the invariant that all nodes of the branch sit between entry
// and exit.
func (b *Branch[T]) PointLeavesToExit() {
	for _, leaf := range b.Leaves() {
		for _, out := range slices.Clone(leaf.outgoing) {
			leaf.ReleasePointer(out)
		}
		leaf.PointTowards(b.exit)
	}
}
