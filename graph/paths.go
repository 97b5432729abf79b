package graph

import "log/slog"

// Paths expands every entry-to-leaf path of the branch as a cross product
// over branching nodes. Sentinels are excluded from the returned paths.
//
// The number of paths is exponential in the branching factor; this is an
// opt-in utility for small graphs. Linear consumers should iterate Nodes
// instead. Paths longer than MaxLayerIterations are truncated with a
// warning, which bounds hand-wired cyclic graphs.
func (b *Branch[T]) Paths() [][]*Node[T] {
	var paths [][]*Node[T]

	var walk func(node *Node[T], prefix []*Node[T])
	walk = func(node *Node[T], prefix []*Node[T]) {
		if !node.sentinel {
			prefix = append(prefix, node)
		}
		if len(prefix) >= MaxLayerIterations {
			slog.Warn("path enumeration exceeded safety cap, truncating",
				"max_length", MaxLayerIterations,
			)
			paths = append(paths, clonePath(prefix))
			return
		}
		var next []*Node[T]
		for _, out := range node.outgoing {
			if out != b.exit {
				next = append(next, out)
			}
		}
		if len(next) == 0 {
			if len(prefix) > 0 {
				paths = append(paths, clonePath(prefix))
			}
			return
		}
		for _, child := range next {
			walk(child, prefix)
		}
	}

	walk(b.entry, nil)
	return paths
}

func clonePath[T any](path []*Node[T]) []*Node[T] {
	out := make([]*Node[T], len(path))
	copy(out, path)
	return out
}
