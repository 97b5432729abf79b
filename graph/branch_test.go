package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewBranch_Empty verifies an empty branch wires entry to exit and has
// zero depth.
func TestNewBranch_Empty(t *testing.T) {
	b := NewBranch[string]()

	assert.Equal(t, 0, b.Depth())
	assert.Empty(t, b.NodesAt(1))
	require.Len(t, b.Entry().Outgoing(), 1)
	assert.Same(t, b.Exit(), b.Entry().Outgoing()[0])
}

// TestBranch_AppendSingle verifies a single appended node sits between the
// sentinels and becomes the only leaf.
func TestBranch_AppendSingle(t *testing.T) {
	b := NewBranch[string]()
	node := NewNode("a")

	b.Append(node)

	assert.Equal(t, 1, b.Depth())
	leaves := b.Leaves()
	require.Len(t, leaves, 1)
	assert.Same(t, node, leaves[0])
	require.Len(t, node.Outgoing(), 1)
	assert.Same(t, b.Exit(), node.Outgoing()[0])
	assert.True(t, b.Contains(node))
}

// TestBranch_AppendChain verifies sequential appends form a linear chain.
func TestBranch_AppendChain(t *testing.T) {
	b := NewBranch[string]()
	a := NewNode("a")
	c := NewNode("c")

	b.Extend(a, c)

	assert.Equal(t, 2, b.Depth())
	require.Len(t, a.Outgoing(), 1)
	assert.Same(t, c, a.Outgoing()[0])
	leaves := b.Leaves()
	require.Len(t, leaves, 1)
	assert.Same(t, c, leaves[0])
}

// buildDiamond wires the structure below and appends it to a fresh branch:
//
//	         b - d
//	        /   /
//	entry- a   /  - exit
//	        \ /
//	         c
func buildDiamond(t *testing.T) (*Branch[string], map[string]*Node[string]) {
	t.Helper()
	nodes := map[string]*Node[string]{
		"a": NewNode("a"),
		"b": NewNode("b"),
		"c": NewNode("c"),
		"d": NewNode("d"),
	}
	nodes["a"].PointTowards(nodes["b"])
	nodes["a"].PointTowards(nodes["c"])
	nodes["b"].PointTowards(nodes["d"])
	nodes["c"].PointTowards(nodes["d"])

	b := NewBranch[string]()
	b.Append(nodes["a"])
	return b, nodes
}

// TestBranch_Diamond verifies layer iteration, leaf detection and depth on
// a branching subgraph appended as one unit.
func TestBranch_Diamond(t *testing.T) {
	b, nodes := buildDiamond(t)

	assert.Equal(t, 3, b.Depth())

	leaves := b.Leaves()
	require.Len(t, leaves, 1)
	assert.Same(t, nodes["d"], leaves[0])

	layer := b.NodesAt(2)
	require.Len(t, layer, 2)
	assert.Same(t, nodes["b"], layer[0])
	assert.Same(t, nodes["c"], layer[1])
}

// TestBranch_DiamondExtended appends a second subgraph and verifies the
// leaves are rewired through it.
func TestBranch_DiamondExtended(t *testing.T) {
	b, nodes := buildDiamond(t)
	e := NewNode("e")
	f := NewNode("f")
	e.PointTowards(f)
	nodes["c"].PointTowards(f)

	b.Append(e)

	assert.Equal(t, 5, b.Depth())
	leaves := b.Leaves()
	require.Len(t, leaves, 1)
	assert.Same(t, f, leaves[0])
}

// TestBranch_AppendAfter verifies attaching after an interior node keeps
// independent leaves intact.
func TestBranch_AppendAfter(t *testing.T) {
	b := NewBranch[string]()
	a := NewNode("a")
	c := NewNode("c")
	b.Append(a)
	b.AppendAfter(a, c)

	d := NewNode("d")
	b.AppendAfter(a, d)

	// Both c and d hang off a; both are leaves.
	leaves := b.Leaves()
	require.Len(t, leaves, 2)
	assert.ElementsMatch(t, []*Node[string]{c, d}, leaves)
	assert.Equal(t, 2, b.Depth())
}

// TestBranch_NodesIterator verifies the node iterator excludes the exit
// sentinel, includes the entry, and is restartable.
func TestBranch_NodesIterator(t *testing.T) {
	b, _ := buildDiamond(t)

	for round := 0; round < 2; round++ {
		var values []string
		sentinels := 0
		for node := range b.Nodes() {
			if node.Sentinel() {
				sentinels++
				continue
			}
			values = append(values, node.Value())
		}
		assert.Equal(t, []string{"a", "b", "c", "d"}, values)
		assert.Equal(t, 1, sentinels, "only the entry sentinel is yielded")
	}
}

// TestBranch_NodesAtOutOfRange verifies graceful lookups for negative and
// too-large depths.
func TestBranch_NodesAtOutOfRange(t *testing.T) {
	b, _ := buildDiamond(t)

	assert.Nil(t, b.NodesAt(-1))
	assert.Nil(t, b.NodesAt(42))
}

// TestBranch_LayerSafetyCap verifies that cyclic hand-wiring terminates by
// truncation instead of hanging.
func TestBranch_LayerSafetyCap(t *testing.T) {
	b := NewBranch[string]()
	a := NewNode("a")
	c := NewNode("c")
	b.Append(a)
	b.AppendAfter(a, c)
	// Illegal back-edge; iteration must still terminate.
	c.PointTowards(a)

	layers := 0
	for range b.Layers() {
		layers++
	}
	assert.Equal(t, MaxLayerIterations, layers)
	assert.Equal(t, MaxLayerIterations-1, b.Depth())
}

// TestBranch_Paths verifies cross-product path expansion over a branching
// graph.
func TestBranch_Paths(t *testing.T) {
	b, nodes := buildDiamond(t)
	e := NewNode("e")
	f := NewNode("f")
	e.PointTowards(f)
	nodes["c"].PointTowards(f)
	b.Append(e)

	paths := b.Paths()
	var rendered [][]string
	for _, path := range paths {
		var values []string
		for _, node := range path {
			values = append(values, node.Value())
		}
		rendered = append(rendered, values)
	}
	assert.ElementsMatch(t, [][]string{
		{"a", "b", "d", "e", "f"},
		{"a", "c", "d", "e", "f"},
		{"a", "c", "f"},
	}, rendered)
}

// TestBranch_PathsEmpty verifies an empty branch yields no paths.
func TestBranch_PathsEmpty(t *testing.T) {
	b := NewBranch[int]()
	assert.Empty(t, b.Paths())
}

// TestNode_ReleasePointer verifies edge removal updates both sides.
func TestNode_ReleasePointer(t *testing.T) {
	a := NewNode(1)
	c := NewNode(2)
	a.PointTowards(c)
	require.Len(t, a.Outgoing(), 1)
	require.Len(t, c.Incoming(), 1)

	a.ReleasePointer(c)
	assert.Empty(t, a.Outgoing())
	assert.Empty(t, c.Incoming())

	// Releasing an absent edge is a no-op.
	a.ReleasePointer(c)
	assert.Empty(t, a.Outgoing())
}
