package circuit

import (
	"iter"

	"github.com/qutech-delft/circuitgraph/graph"
)

// OperationNode is a branch node carrying an operation.
type OperationNode = graph.Node[Operation]

// CircuitGraph is the scheduling structure of a composite operation: a
// sentinel-pinned branch whose nodes wrap operations. Node placement
// encodes the insertion ancestry; timing is resolved through the relation
// links of the operations, not through the edges.
type CircuitGraph struct {
	branch *graph.Branch[Operation]
}

// NewCircuitGraph creates an empty circuit graph.
func NewCircuitGraph() *CircuitGraph {
	return &CircuitGraph{branch: graph.NewBranch[Operation]()}
}

// Root returns the entry sentinel node.
func (g *CircuitGraph) Root() *OperationNode { return g.branch.Entry() }

// AppendTo attaches node directly after an existing node of the graph.
// Appending to the root places the node at depth one.
func (g *CircuitGraph) AppendTo(after, node *OperationNode) {
	g.branch.AppendAfter(after, node)
}

// Nodes returns a restartable iterator over the operation nodes in layer
// order, excluding the sentinels.
func (g *CircuitGraph) Nodes() iter.Seq[*OperationNode] {
	return func(yield func(*OperationNode) bool) {
		for node := range g.branch.Nodes() {
			if node.Sentinel() {
				continue
			}
			if !yield(node) {
				return
			}
		}
	}
}

// Operations collects the operations in layer order.
func (g *CircuitGraph) Operations() []Operation {
	var result []Operation
	for node := range g.Nodes() {
		result = append(result, node.Value())
	}
	return result
}

// ChannelIdentifiers collects the channels occupied by any operation of
// the graph, filtered under the relaxed channel equality.
func (g *CircuitGraph) ChannelIdentifiers() []ChannelID {
	var ids []ChannelID
	for node := range g.Nodes() {
		ids = append(ids, node.Value().ChannelIdentifiers()...)
	}
	return uniqueChannels(ids)
}

// CorrespondingNode finds the node wrapping op, nil when op is not part
// of the graph. Identity is interface identity.
func (g *CircuitGraph) CorrespondingNode(op Operation) *OperationNode {
	for node := range g.Nodes() {
		if node.Value() == op {
			return node
		}
	}
	return nil
}

// Leaves collects the operation nodes whose only outgoing edge is the
// exit sentinel. An empty graph has no leaves.
func (g *CircuitGraph) Leaves() []*OperationNode {
	var leaves []*OperationNode
	for _, node := range g.branch.Leaves() {
		if !node.Sentinel() {
			leaves = append(leaves, node)
		}
	}
	return leaves
}

// OperationsAt returns the operation nodes at the given layer depth.
// Depth zero is the root sentinel layer.
func (g *CircuitGraph) OperationsAt(depth int) []*OperationNode {
	var nodes []*OperationNode
	for _, node := range g.branch.NodesAt(depth) {
		if !node.Sentinel() {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// Depth returns the layer depth of the graph, excluding the exit.
func (g *CircuitGraph) Depth() int { return g.branch.Depth() }

// LatestClaimant finds the most recent node occupying any of the given
// channels: for each channel, the last matching node in layer order is a
// candidate, and among candidates the one with the latest end time wins.
// End time ties keep the candidate of the earliest listed channel. Nil
// when no channel is claimed yet.
func (g *CircuitGraph) LatestClaimant(channels []ChannelID) *OperationNode {
	var nodes []*OperationNode
	for node := range g.Nodes() {
		nodes = append(nodes, node)
	}

	var best *OperationNode
	for _, ch := range channels {
		var candidate *OperationNode
		for i := len(nodes) - 1; i >= 0; i-- {
			if anyChannelMatches(nodes[i].Value().ChannelIdentifiers(), []ChannelID{ch}) {
				candidate = nodes[i]
				break
			}
		}
		if candidate == nil {
			continue
		}
		if best == nil || candidate.Value().EndTime() > best.Value().EndTime() {
			best = candidate
		}
	}
	return best
}
