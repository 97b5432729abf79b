package graph

import "sync/atomic"

// nodeIDCounter populates unique node identifiers across all node types.
var nodeIDCounter atomic.Int64

// Node is a single vertex in a branch DAG, carrying a payload value.
//
// A node owns its outgoing pointer list and maintains a reverse incoming
// list so that edges can be released from either side. Identity is the
// node pointer itself; the numeric ID exists for diagnostics.
type Node[T any] struct {
	id       int64
	value    T
	sentinel bool
	outgoing []*Node[T]
	incoming []*Node[T]
}

// NewNode creates a detached node carrying value.
func NewNode[T any](value T) *Node[T] {
	return &Node[T]{id: nodeIDCounter.Add(1), value: value}
}

// newSentinel creates an entry/exit sentinel node with a zero payload.
func newSentinel[T any]() *Node[T] {
	return &Node[T]{id: nodeIDCounter.Add(1), sentinel: true}
}

// ID returns the diagnostic identifier of the node.
func (n *Node[T]) ID() int64 { return n.id }

// Value returns the payload carried by the node.
// Sentinel nodes carry the zero value.
func (n *Node[T]) Value() T { return n.value }

// Sentinel reports whether the node is a branch entry or exit sentinel.
func (n *Node[T]) Sentinel() bool { return n.sentinel }

// Outgoing returns the nodes this node points at.
// The returned slice is the internal list; callers must not mutate it.
func (n *Node[T]) Outgoing() []*Node[T] { return n.outgoing }

// Incoming returns the nodes pointing at this node.
// The returned slice is the internal list; callers must not mutate it.
func (n *Node[T]) Incoming() []*Node[T] { return n.incoming }

// IsRoot reports whether no node points at this node.
func (n *Node[T]) IsRoot() bool { return len(n.incoming) == 0 }

// IsLeaf reports whether this node points at no other node.
func (n *Node[T]) IsLeaf() bool { return len(n.outgoing) == 0 }

// PointTowards adds a directed edge from n to other and registers the
// reverse pointer on other.
func (n *Node[T]) PointTowards(other *Node[T]) {
	n.outgoing = append(n.outgoing, other)
	other.incoming = append(other.incoming, n)
}

// ReleasePointer removes the directed edge from n to other, if present.
// Releasing an absent edge is a no-op.
func (n *Node[T]) ReleasePointer(other *Node[T]) {
	for i, out := range n.outgoing {
		if out == other {
			n.outgoing = append(n.outgoing[:i], n.outgoing[i+1:]...)
			other.dropIncoming(n)
			return
		}
	}
}

func (n *Node[T]) dropIncoming(from *Node[T]) {
	for i, in := range n.incoming {
		if in == from {
			n.incoming = append(n.incoming[:i], n.incoming[i+1:]...)
			return
		}
	}
}

// dedupeNodes filters duplicate nodes while preserving first-seen order.
func dedupeNodes[T any](nodes []*Node[T]) []*Node[T] {
	seen := make(map[*Node[T]]struct{}, len(nodes))
	result := nodes[:0:0]
	for _, node := range nodes {
		if _, ok := seen[node]; ok {
			continue
		}
		seen[node] = struct{}{}
		result = append(result, node)
	}
	return result
}
