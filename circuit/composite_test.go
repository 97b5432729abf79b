package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mwChannel(qubit int) ChannelID {
	return ChannelID{Qubit: qubit, Channel: ChannelMicrowave}
}

func opNames(ops []Operation) []string {
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.(*fakeOp).name)
	}
	return names
}

// TestComposite_Empty verifies the zero-content timing values.
func TestComposite_Empty(t *testing.T) {
	c := NewComposite()

	assert.Equal(t, 0.0, c.StartTime())
	assert.Equal(t, 0.0, c.Duration())
	assert.Equal(t, 0.0, c.EndTime())
	assert.Empty(t, c.ChannelIdentifiers())
	assert.Equal(t, StateBuilding, c.State())
}

// TestComposite_DefaultSerialization verifies operations sharing a
// channel chain back to back in insertion order.
func TestComposite_DefaultSerialization(t *testing.T) {
	c := NewComposite()
	x := newFakeOp("x", 1, mwChannel(0))
	y := newFakeOp("y", 1, mwChannel(0))
	c.Add(x).Add(y)

	assert.Equal(t, 0.0, x.StartTime())
	assert.Equal(t, 1.0, y.StartTime())
	assert.Equal(t, 2.0, c.Duration())
	require.True(t, HasRelation(y), "a synthesized followed-by relation is attached")
	assert.Same(t, x, y.RelationLink().Reference())
}

// TestComposite_IndependentChannels verifies operations on disjoint
// channels run in parallel from time zero.
func TestComposite_IndependentChannels(t *testing.T) {
	c := NewComposite()
	x := newFakeOp("x", 1, mwChannel(0))
	y := newFakeOp("y", 2, mwChannel(1))
	c.Add(x).Add(y)

	assert.Equal(t, 0.0, x.StartTime())
	assert.Equal(t, 0.0, y.StartTime())
	assert.Equal(t, 2.0, c.Duration())
}

// TestComposite_JoinedRelations verifies explicit alignment relations
// override channel serialization.
func TestComposite_JoinedRelations(t *testing.T) {
	c := NewComposite()
	a := newFakeOp("a", 2, mwChannel(0))
	c.Add(a)

	atEnd := newFakeOp("atEnd", 0.5, mwChannel(1))
	atEnd.SetRelationLink(NewLink(a, JoinedEnd))
	c.Add(atEnd)

	atStart := newFakeOp("atStart", 1, mwChannel(2))
	atStart.SetRelationLink(NewLink(a, JoinedStart))
	c.Add(atStart)

	assert.Equal(t, 1.5, atEnd.StartTime())
	assert.Equal(t, 2.0, atEnd.EndTime())
	assert.Equal(t, 0.0, atStart.StartTime())
	assert.Equal(t, 2.0, c.Duration())
}

// TestComposite_MixedScheduling verifies the interplay of an explicit
// joined-start relation with subsequent channel serialization.
func TestComposite_MixedScheduling(t *testing.T) {
	c := NewComposite()
	o0 := newFakeOp("o0", 1, mwChannel(0))
	c.Add(o0)

	o1 := newFakeOp("o1", 1, mwChannel(1))
	o1.SetRelationLink(NewLink(o0, JoinedStart))
	c.Add(o1)

	o2 := newFakeOp("o2", 1, mwChannel(0))
	c.Add(o2)
	o3 := newFakeOp("o3", 1, mwChannel(1))
	c.Add(o3)

	assert.Equal(t, 0.0, o1.StartTime())
	assert.Equal(t, 1.0, o2.StartTime(), "o2 serializes behind o0 on qubit 0")
	assert.Equal(t, 1.0, o3.StartTime(), "o3 serializes behind o1 on qubit 1")
	assert.Equal(t, 2.0, c.Duration())
}

// TestComposite_ThreeOpSchedule resolves the canonical three-operation
// example: serialization on a shared channel plus a joined start on a
// free one.
func TestComposite_ThreeOpSchedule(t *testing.T) {
	c := NewComposite()
	o0 := newFakeOp("o0", 1, mwChannel(0))
	c.Add(o0)
	o1 := newFakeOp("o1", 1, mwChannel(0))
	c.Add(o1)
	o2 := newFakeOp("o2", 1, mwChannel(1))
	o2.SetRelationLink(NewLink(o0, JoinedStart))
	c.Add(o2)

	assert.Equal(t, 0.0, o0.StartTime())
	assert.Equal(t, 1.0, o0.EndTime())
	assert.Equal(t, 1.0, o1.StartTime())
	assert.Equal(t, 2.0, o1.EndTime())
	assert.Equal(t, 0.0, o2.StartTime())
	assert.Equal(t, 1.0, o2.EndTime())
}

// TestComposite_DetachedRelationDegrades verifies a relation to an
// operation outside the circuit is discarded with one recorded warning
// and placement falls back to channel serialization.
func TestComposite_DetachedRelationDegrades(t *testing.T) {
	c := NewComposite()
	a := newFakeOp("a", 1, mwChannel(0))
	c.Add(a)

	stray := newFakeOp("stray", 1, mwChannel(0))
	o := newFakeOp("o", 1, mwChannel(0))
	o.SetRelationLink(NewLink(stray, FollowedBy))
	c.Add(o)

	assert.Equal(t, 1.0, o.StartTime(), "falls back to serialization behind a")
	assert.Same(t, a, o.RelationLink().Reference())
	require.Equal(t, 1, c.Warnings().Len())
	assert.Equal(t, WarnDetachedReference, c.Warnings().Entries()[0].Code)

	// Another dangling relation to the same stray reference stays
	// deduplicated.
	p := newFakeOp("p", 1, mwChannel(0))
	p.SetRelationLink(NewLink(stray, FollowedBy))
	c.Add(p)
	assert.Equal(t, 1, c.Warnings().Len())
}

// TestComposite_AllChannelBarrier verifies an all-channel operation
// serializes against every lane of its qubit.
func TestComposite_AllChannelBarrier(t *testing.T) {
	c := NewComposite()
	x := newFakeOp("x", 1, ChannelID{Qubit: 0, Channel: ChannelFlux})
	c.Add(x)
	barrier := newFakeOp("barrier", 0.5, ChannelID{Qubit: 0, Channel: ChannelAll})
	c.Add(barrier)
	y := newFakeOp("y", 1, mwChannel(0))
	c.Add(y)

	assert.Equal(t, 1.0, barrier.StartTime())
	assert.Equal(t, 1.5, y.StartTime(), "microwave serializes behind the all-channel claim")
}

// TestComposite_LatestClaimantTieBreak verifies that among equally late
// claimants the earliest listed channel wins.
func TestComposite_LatestClaimantTieBreak(t *testing.T) {
	c := NewComposite()
	a := newFakeOp("a", 1, mwChannel(0))
	b := newFakeOp("b", 1, mwChannel(1))
	c.Add(a).Add(b)

	two := newFakeOp("two", 1, mwChannel(0), mwChannel(1))
	c.Add(two)

	assert.Same(t, a, two.RelationLink().Reference())
	assert.Equal(t, 1.0, two.StartTime())
}

// TestComposite_DurationSpan verifies the duration spans from the
// earliest first-layer start to the latest leaf end.
func TestComposite_DurationSpan(t *testing.T) {
	c := NewComposite()
	a := newFakeOp("a", 1, mwChannel(0))
	b := newFakeOp("b", 4, mwChannel(1))
	tail := newFakeOp("tail", 1, mwChannel(0))
	c.Add(a).Add(b).Add(tail)

	assert.Equal(t, 4.0, c.Duration())
	assert.Equal(t, 4.0, c.EndTime())
}

// TestComposite_CopyFidelity verifies copies resolve identical times
// through remapped references and stay isolated from the original.
func TestComposite_CopyFidelity(t *testing.T) {
	c := NewComposite()
	o0 := newFakeOp("o0", 1, mwChannel(0))
	c.Add(o0)
	o1 := newFakeOp("o1", 1, mwChannel(1))
	o1.SetRelationLink(NewLink(o0, JoinedStart))
	c.Add(o1)
	o2 := newFakeOp("o2", 1, mwChannel(0))
	c.Add(o2)

	duplicate := c.Copy(nil).(*CompositeOperation)

	ops := duplicate.Graph().Operations()
	require.Len(t, ops, 3)
	assert.Equal(t, []string{"o0", "o1", "o2"}, opNames(ops))
	for i, op := range ops {
		assert.NotSame(t, c.Graph().Operations()[i], op)
	}
	assert.Same(t, ops[0], ops[1].RelationLink().Reference(),
		"copied relation points at the copied reference")
	assert.Equal(t, 2.0, duplicate.Duration())
	assert.Equal(t, 0, c.Warnings().Len())

	// Mutating the copy leaves the original untouched.
	duplicate.Add(newFakeOp("extra", 1, mwChannel(0)))
	assert.Equal(t, 2.0, c.Duration())
	assert.Equal(t, 3.0, duplicate.Duration())
}

// TestComposite_Extend verifies extension anchors headless members of the
// other composite behind the latest current leaf.
func TestComposite_Extend(t *testing.T) {
	c := NewComposite()
	a := newFakeOp("a", 1, mwChannel(0))
	b := newFakeOp("b", 3, mwChannel(1))
	c.Add(a).Add(b)

	other := NewComposite()
	m := newFakeOp("m", 1, mwChannel(2))
	other.Add(m)

	c.Extend(other)

	assert.Equal(t, 3.0, m.StartTime(), "extension starts after the latest leaf")
	assert.Equal(t, 4.0, c.Duration())
}

// TestComposite_RepeatViaModifiers verifies the repetition strategy
// expands into chained rounds exactly once.
func TestComposite_RepeatViaModifiers(t *testing.T) {
	c := NewComposite(WithRepetition(FixedRepetitionStrategy{Repetitions: 3}))
	x := newFakeOp("x", 1, mwChannel(0))
	y := newFakeOp("y", 2, mwChannel(1))
	c.Add(x).Add(y)

	c.ApplyModifiers()

	ops := c.Decomposed()
	require.Len(t, ops, 6)
	assert.Equal(t, []string{"x", "y", "x", "y", "x", "y"}, opNames(ops))
	assert.Equal(t, 6.0, c.Duration(), "rounds chain after the longest member")
	assert.Equal(t, 1, c.Repetitions(), "strategy collapses to a fixed single round")
	assert.Equal(t, StateModified, c.State())

	// Applying modifiers again must not grow the circuit.
	c.ApplyModifiers()
	assert.Len(t, c.Decomposed(), 6)
	assert.Equal(t, 6.0, c.Duration())
}

// TestComposite_RepeatOnce verifies a single repetition leaves the
// structure untouched.
func TestComposite_RepeatOnce(t *testing.T) {
	c := NewComposite()
	c.Add(newFakeOp("x", 1, mwChannel(0)))

	c.ApplyModifiers()

	assert.Len(t, c.Decomposed(), 1)
	assert.Equal(t, 1.0, c.Duration())
}

// TestComposite_NestedDecomposition verifies headless members of a nested
// composite inherit the composite relation when flattened out.
func TestComposite_NestedDecomposition(t *testing.T) {
	outer := NewComposite()
	x := newFakeOp("x", 1, mwChannel(0))
	outer.Add(x)

	inner := NewComposite()
	p := newFakeOp("p", 1, mwChannel(0))
	q := newFakeOp("q", 1, mwChannel(1))
	inner.Add(p).Add(q)
	outer.Add(inner)

	require.True(t, HasRelation(inner), "inner serializes behind x on qubit 0")
	assert.Equal(t, 1.0, inner.StartTime())

	ops := outer.Decomposed()
	require.Len(t, ops, 3)
	assert.Equal(t, []string{"x", "p", "q"}, opNames(ops))
	assert.Equal(t, 1.0, p.StartTime())
	assert.Equal(t, 1.0, q.StartTime())
	assert.Equal(t, 2.0, outer.Duration())
}

// TestComposite_SubComposites verifies recursive collection of nested
// composites.
func TestComposite_SubComposites(t *testing.T) {
	innermost := NewComposite()
	innermost.Add(newFakeOp("deep", 1, mwChannel(2)))
	inner := NewComposite()
	inner.Add(newFakeOp("p", 1, mwChannel(1)))
	inner.Add(innermost)
	outer := NewComposite()
	outer.Add(newFakeOp("x", 1, mwChannel(0)))
	outer.Add(inner)

	subs := outer.SubComposites()
	require.Len(t, subs, 2)
	assert.Same(t, inner, subs[0])
	assert.Same(t, innermost, subs[1])
}

// TestComposite_Flatten verifies flattening rebuilds one primitive layer
// with unchanged timing and is idempotent.
func TestComposite_Flatten(t *testing.T) {
	outer := NewComposite()
	x := newFakeOp("x", 1, mwChannel(0))
	outer.Add(x)
	inner := NewComposite()
	p := newFakeOp("p", 1, mwChannel(0))
	q := newFakeOp("q", 1, mwChannel(1))
	inner.Add(p).Add(q)
	outer.Add(inner)

	outer.ApplyFlattenToSelf()

	assert.Equal(t, StateFlattened, outer.State())
	assert.Empty(t, outer.SubComposites())
	ops := outer.Graph().Operations()
	require.Len(t, ops, 3)
	assert.Equal(t, 1.0, p.StartTime())
	assert.Equal(t, 2.0, outer.Duration())

	outer.ApplyFlattenToSelf()
	assert.Len(t, outer.Graph().Operations(), 3)
}

// TestComposite_AsNestedOperation verifies a composite used as a member
// resolves its own relation like any operation.
func TestComposite_AsNestedOperation(t *testing.T) {
	parent := NewComposite()
	a := newFakeOp("a", 2, mwChannel(0))
	parent.Add(a)

	child := NewComposite(WithRelation(NewLink(a, FollowedBy)))
	child.Add(newFakeOp("z", 1, mwChannel(1)))
	parent.Add(child)

	assert.Equal(t, 2.0, child.StartTime())
	assert.Equal(t, 3.0, child.EndTime())
	assert.Equal(t, 3.0, parent.Duration())
}
