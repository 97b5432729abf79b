package circuit

import (
	"fmt"
	"math"

	"github.com/qutech-delft/circuitgraph/graph"
)

// CompositeState tracks the one-directional modifier lifecycle of a
// composite operation.
type CompositeState int

const (
	// StateBuilding accepts structural additions.
	StateBuilding CompositeState = iota
	// StateModified marks a composite whose modifiers have been applied.
	StateModified
	// StateFlattened marks a composite rebuilt from its decomposition.
	StateFlattened
)

func (s CompositeState) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateModified:
		return "modified"
	case StateFlattened:
		return "flattened"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CompositeOperation groups operations in a circuit graph and behaves as
// one operation towards its surroundings: it occupies the union of its
// member channels, spans their combined duration and can itself carry a
// relation and a repetition strategy.
type CompositeOperation struct {
	relation   RelationLink
	repetition RepetitionStrategy
	graph      *CircuitGraph
	warnings   *WarningLog
	state      CompositeState
}

// CompositeOption configures a composite operation at construction.
type CompositeOption func(*CompositeOperation)

// WithRelation anchors the composite to a reference operation.
func WithRelation(link RelationLink) CompositeOption {
	return func(c *CompositeOperation) { c.relation = link }
}

// WithRepetition sets the repetition strategy applied by ApplyModifiers.
func WithRepetition(strategy RepetitionStrategy) CompositeOption {
	return func(c *CompositeOperation) { c.repetition = strategy }
}

// WithWarningLog shares an existing warning log instead of creating one.
func WithWarningLog(log *WarningLog) CompositeOption {
	return func(c *CompositeOperation) { c.warnings = log }
}

// NewComposite creates an empty composite operation. Without options it
// carries no relation and a fixed repetition count of one.
func NewComposite(opts ...CompositeOption) *CompositeOperation {
	c := &CompositeOperation{
		relation:   Link{},
		repetition: FixedRepetitionStrategy{Repetitions: 1},
		graph:      NewCircuitGraph(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.warnings == nil {
		c.warnings = NewWarningLog()
	}
	return c
}

// Graph exposes the internal scheduling structure.
func (c *CompositeOperation) Graph() *CircuitGraph { return c.graph }

// Warnings returns the warning log of the composite.
func (c *CompositeOperation) Warnings() *WarningLog { return c.warnings }

// State returns the modifier lifecycle state.
func (c *CompositeOperation) State() CompositeState { return c.state }

// ChannelIdentifiers returns the union of the member channels.
func (c *CompositeOperation) ChannelIdentifiers() []ChannelID {
	return c.graph.ChannelIdentifiers()
}

// RelationLink returns the relation of the composite itself.
func (c *CompositeOperation) RelationLink() RelationLink { return c.relation }

// SetRelationLink replaces the relation of the composite itself.
func (c *CompositeOperation) SetRelationLink(link RelationLink) { c.relation = link }

// Repetitions resolves the repetition strategy.
func (c *CompositeOperation) Repetitions() int {
	return c.repetition.RepetitionCount(c)
}

// StartTime resolves the start of the composite through its relation.
func (c *CompositeOperation) StartTime() float64 {
	return c.relation.StartTime(c.Duration())
}

// Duration spans from the earliest start among the depth-one members to
// the latest end among the leaves. An empty composite has zero duration.
func (c *CompositeOperation) Duration() float64 {
	earliest := math.Inf(1)
	for _, node := range c.graph.OperationsAt(1) {
		if start := node.Value().StartTime(); start < earliest {
			earliest = start
		}
	}
	total := 0.0
	for _, leaf := range c.graph.Leaves() {
		if span := leaf.Value().EndTime() - earliest; span > total {
			total = span
		}
	}
	return total
}

// EndTime resolves StartTime plus Duration.
func (c *CompositeOperation) EndTime() float64 {
	return c.StartTime() + c.Duration()
}

// Add inserts an operation into the composite.
//
// Placement follows four rules. An operation with a relation to a member
// of this composite attaches directly after that member. An operation
// without a relation attaches after the most recent claimant of any of
// its channels, receiving a followed-by relation to it, or at the root
// when its channels are all free. An operation whose relation references
// a non-member has the relation discarded with a recorded warning and
// falls back to channel placement.
func (c *CompositeOperation) Add(op Operation) *CompositeOperation {
	node := graph.NewNode(op)

	if HasRelation(op) {
		ref := op.RelationLink().Reference()
		if refNode := c.graph.CorrespondingNode(ref); refNode != nil {
			c.graph.AppendTo(refNode, node)
			return c
		}
		c.warnings.Record(WarnDetachedReference, fmt.Sprintf("%p", ref),
			"relation references a %T outside this circuit, discarding relation", ref)
		op.SetRelationLink(Link{})
	}

	claimant := c.graph.LatestClaimant(op.ChannelIdentifiers())
	if claimant == nil {
		c.graph.AppendTo(c.graph.Root(), node)
		return c
	}
	op.SetRelationLink(NewLink(claimant.Value(), FollowedBy))
	c.graph.AppendTo(claimant, node)
	return c
}

// Copy duplicates the composite and every member, registering each pair
// in the transfer table so relations inside the copy reference copied
// members. A nil table starts a fresh lookup. The copy starts in the
// building state and shares the warning log.
func (c *CompositeOperation) Copy(table *TransferTable) Operation {
	if table == nil {
		table = NewTransferTable(c.warnings)
	}
	result := NewComposite(
		WithRelation(c.relation.Copy(table)),
		WithRepetition(c.repetition),
		WithWarningLog(c.warnings),
	)
	for node := range c.graph.Nodes() {
		original := node.Value()
		duplicate := original.Copy(table)
		table.Put(original, duplicate)
		result.Add(duplicate)
	}
	return result
}

// ApplyModifiers expands the repetition strategy into explicit structure,
// collapses it to a fixed count of one, and recurses into the members.
// Applying twice is a no-op.
func (c *CompositeOperation) ApplyModifiers() Operation {
	c.Repeat(c.Repetitions())
	c.repetition = FixedRepetitionStrategy{Repetitions: 1}
	for node := range c.graph.Nodes() {
		node.Value().ApplyModifiers()
	}
	if c.state == StateBuilding {
		c.state = StateModified
	}
	return c
}

// Repeat extends the composite with times-1 copies of its current
// content, each chained after the previous round.
func (c *CompositeOperation) Repeat(times int) *CompositeOperation {
	template := c.Copy(nil).(*CompositeOperation)
	for i := 1; i < times; i++ {
		c.Extend(template.Copy(nil).(*CompositeOperation))
	}
	return c
}

// Extend appends the members of other behind the current content. Members
// of other without a relation of their own are anchored behind the latest
// current leaf, so the extension starts only after this composite ends.
func (c *CompositeOperation) Extend(other *CompositeOperation) *CompositeOperation {
	leaves := c.graph.Leaves()
	refs := make([]Operation, 0, len(leaves))
	for _, leaf := range leaves {
		refs = append(refs, leaf.Value())
	}
	anchor := NewMultiLink(refs, Latest, FollowedBy)
	for node := range other.graph.Nodes() {
		op := node.Value()
		if !HasRelation(op) {
			op.SetRelationLink(anchor)
		}
		c.Add(op)
	}
	return c
}

// Decomposed flattens the composite depth first. Members without a
// relation of their own inherit the relation of the composite, anchoring
// the flat list the way the composite itself was anchored.
func (c *CompositeOperation) Decomposed() []Operation {
	var result []Operation
	for node := range c.graph.Nodes() {
		op := node.Value()
		if !HasRelation(op) {
			op.SetRelationLink(c.relation)
		}
		result = append(result, op.Decomposed()...)
	}
	return result
}

// SubComposites collects the nested composite members, depth first.
func (c *CompositeOperation) SubComposites() []*CompositeOperation {
	var result []*CompositeOperation
	for node := range c.graph.Nodes() {
		if sub, ok := node.Value().(*CompositeOperation); ok {
			result = append(result, sub)
			result = append(result, sub.SubComposites()...)
		}
	}
	return result
}

// ApplyFlattenToSelf rebuilds the composite from its decomposition,
// replacing nested structure with one flat layer of primitives. Flattening
// a flattened composite is a no-op.
func (c *CompositeOperation) ApplyFlattenToSelf() *CompositeOperation {
	if c.state == StateFlattened {
		return c
	}
	ops := c.Decomposed()
	c.graph = NewCircuitGraph()
	for _, op := range ops {
		c.Add(op)
	}
	c.state = StateFlattened
	return c
}
