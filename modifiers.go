package circuitgraph

import (
	"github.com/qutech-delft/circuitgraph/circuit"
	"github.com/qutech-delft/circuitgraph/ops"
)

// OperationMask rewrites matching operations while a circuit is rebuilt.
type OperationMask interface {
	// Match reports whether the mask applies to the operation.
	Match(op circuit.Operation) bool
	// Mask returns the replacement operation.
	Mask(op circuit.Operation) circuit.Operation
}

// ReplaceOperations rebuilds the circuit with every mask applied to the
// decomposed operations, in the order the masks are given. The source
// circuit stays untouched.
func ReplaceOperations(source *Circuit, masks ...OperationMask) *Circuit {
	result := New(WithQubits(source.NumQubits()))
	for qubit, state := range source.initialStates {
		result.SetQubitInitialState(qubit, state)
	}
	table := circuit.NewTransferTable(result.warnings)
	for _, op := range source.Operations() {
		duplicate := op.Copy(table)
		replacement := duplicate
		for _, mask := range masks {
			if mask.Match(replacement) {
				replacement = mask.Mask(replacement)
			}
		}
		// Later relations resolve to the replacement, keeping the
		// rebuilt schedule closed under masking.
		table.Put(op, replacement)
		result.AddOperation(replacement)
	}
	return result
}

// durationCarrier is satisfied by catalog operations exposing their
// duration strategy.
type durationCarrier interface {
	DurationStrategy() circuit.DurationStrategy
}

// ChannelVacantMask replaces every operation claiming the given channel
// with a virtual vacancy of identical duration and relation, emptying the
// channel without shifting the rest of the schedule.
type ChannelVacantMask struct {
	Channel circuit.ChannelID
	Factory *ops.Factory
}

func (m ChannelVacantMask) Match(op circuit.Operation) bool {
	for _, id := range op.ChannelIdentifiers() {
		if id.Matches(m.Channel) {
			return true
		}
	}
	return false
}

func (m ChannelVacantMask) Mask(op circuit.Operation) circuit.Operation {
	duration := circuit.DurationStrategy(circuit.FixedDurationStrategy{Duration: op.Duration()})
	if carrier, ok := op.(durationCarrier); ok {
		duration = carrier.DurationStrategy()
	}
	return m.Factory.VirtualVacant(m.Channel.Qubit, duration, op.RelationLink())
}
