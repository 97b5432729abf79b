// Package circuitgraph provides the declarative front for building
// quantum gate circuits on top of the composite-operation engine.
//
// A Circuit wraps one root composite operation together with the
// acquisition registry scanning it and a shared warning log. Operations
// are added in program order; timing falls out of channel serialization
// and explicit relations, resolved lazily by the engine.
package circuitgraph

import (
	"github.com/qutech-delft/circuitgraph/circuit"
	"github.com/qutech-delft/circuitgraph/registry"
)

// InitialState labels the prepared state of a qubit before the circuit
// runs.
type InitialState string

const (
	StateZero   InitialState = "0"
	StateOne    InitialState = "1"
	StatePlus   InitialState = "+"
	StateMinus  InitialState = "-"
	StatePlusI  InitialState = "+i"
	StateMinusI InitialState = "-i"
)

// Circuit is a declarative circuit over a fixed set of qubits.
type Circuit struct {
	numQubits     int
	structure     *circuit.CompositeOperation
	added         []circuit.Operation
	warnings      *circuit.WarningLog
	acquisitions  *registry.AcquisitionRegistry
	initialStates map[int]InitialState
}

// Option configures a circuit at construction.
type Option func(*config)

type config struct {
	qubits     int
	relation   circuit.RelationLink
	repetition circuit.RepetitionStrategy
}

// WithQubits declares the number of qubits of the circuit.
func WithQubits(n int) Option {
	return func(cfg *config) { cfg.qubits = n }
}

// WithRelation anchors the whole circuit to a reference operation, for
// circuits nested into other circuits.
func WithRelation(link circuit.RelationLink) Option {
	return func(cfg *config) { cfg.relation = link }
}

// WithRepetition sets the repetition strategy of the root composite.
func WithRepetition(strategy circuit.RepetitionStrategy) Option {
	return func(cfg *config) { cfg.repetition = strategy }
}

// New creates an empty circuit.
func New(opts ...Option) *Circuit {
	cfg := config{qubits: 1, relation: circuit.Link{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	warnings := circuit.NewWarningLog()
	compositeOpts := []circuit.CompositeOption{
		circuit.WithWarningLog(warnings),
		circuit.WithRelation(cfg.relation),
	}
	if cfg.repetition != nil {
		compositeOpts = append(compositeOpts, circuit.WithRepetition(cfg.repetition))
	}
	structure := circuit.NewComposite(compositeOpts...)
	return &Circuit{
		numQubits:     cfg.qubits,
		structure:     structure,
		warnings:      warnings,
		acquisitions:  registry.NewAcquisitionRegistry(structure),
		initialStates: make(map[int]InitialState),
	}
}

// NumQubits returns the declared qubit count.
func (c *Circuit) NumQubits() int { return c.numQubits }

// Structure returns the root composite operation.
func (c *Circuit) Structure() *circuit.CompositeOperation { return c.structure }

// AcquisitionRegistry returns the registry scanning this circuit.
func (c *Circuit) AcquisitionRegistry() *registry.AcquisitionRegistry {
	return c.acquisitions
}

// AcquisitionStrategy returns a strategy for measurements added to this
// circuit.
func (c *Circuit) AcquisitionStrategy() circuit.AcquisitionStrategy {
	return registry.RegistryAcquisitionStrategy{Registry: c.acquisitions}
}

// AddOperation inserts an operation and returns it, allowing it to serve
// as a relation reference for later additions.
func (c *Circuit) AddOperation(op circuit.Operation) circuit.Operation {
	c.structure.Add(op)
	c.added = append(c.added, op)
	return op
}

// AddSubCircuit copies the structure of another circuit into this one and
// returns the inserted copy. The source circuit stays untouched; its
// acquisition strategies are rebound to this circuit.
func (c *Circuit) AddSubCircuit(sub *Circuit) *circuit.CompositeOperation {
	table := circuit.NewTransferTable(c.warnings)
	table.Put(sub.structure, c.structure)
	duplicate := sub.structure.Copy(table).(*circuit.CompositeOperation)
	c.structure.Add(duplicate)
	c.added = append(c.added, duplicate)
	return duplicate
}

// LastEntry returns the most recently added operation. Relations of new
// operations commonly anchor to it.
func (c *Circuit) LastEntry() (circuit.Operation, error) {
	if len(c.added) == 0 {
		return nil, circuit.ErrEmptyCircuit
	}
	return c.added[len(c.added)-1], nil
}

// Operations returns the decomposed primitive operations in schedule
// order.
func (c *Circuit) Operations() []circuit.Operation {
	return c.structure.Decomposed()
}

// CompositeOperations returns the nested composites, depth first.
func (c *Circuit) CompositeOperations() []*circuit.CompositeOperation {
	return c.structure.SubComposites()
}

// OccupiedChannels returns the channels claimed by any operation.
func (c *Circuit) OccupiedChannels() []circuit.ChannelID {
	return c.structure.ChannelIdentifiers()
}

// StartTime resolves the circuit start.
func (c *Circuit) StartTime() float64 { return c.structure.StartTime() }

// Duration resolves the circuit duration.
func (c *Circuit) Duration() float64 { return c.structure.Duration() }

// EndTime resolves the circuit end.
func (c *Circuit) EndTime() float64 { return c.structure.EndTime() }

// ApplyModifiers expands repetition strategies into explicit structure.
func (c *Circuit) ApplyModifiers() *Circuit {
	c.structure.ApplyModifiers()
	return c
}

// ApplyFlatten rebuilds the circuit as one flat layer of primitives.
func (c *Circuit) ApplyFlatten() *Circuit {
	c.structure.ApplyFlattenToSelf()
	return c
}

// Warnings returns the structural warnings recorded while building.
func (c *Circuit) Warnings() []circuit.Warning {
	return c.warnings.Entries()
}

// AcquisitionIndicesForQubit returns the circuit-level indices of all
// acquisitions on the given qubit, in schedule order.
func (c *Circuit) AcquisitionIndicesForQubit(qubit int) []int {
	var indices []int
	for index, op := range c.acquisitionOps() {
		if op.AcquisitionIdentifier().QubitIndex == qubit {
			indices = append(indices, index)
		}
	}
	return indices
}

// AcquisitionIndicesForTag returns the circuit-level indices of all
// acquisitions in the given stream, in schedule order.
func (c *Circuit) AcquisitionIndicesForTag(tag circuit.AcquisitionTag) []int {
	var indices []int
	for index, op := range c.acquisitionOps() {
		if op.AcquisitionIdentifier().AcquisitionTag == tag {
			indices = append(indices, index)
		}
	}
	return indices
}

func (c *Circuit) acquisitionOps() []circuit.AcquisitionOperation {
	var result []circuit.AcquisitionOperation
	for _, op := range c.Operations() {
		if acq, ok := op.(circuit.AcquisitionOperation); ok {
			result = append(result, acq)
		}
	}
	return result
}

// SetQubitInitialState declares the prepared state of a qubit.
func (c *Circuit) SetQubitInitialState(qubit int, state InitialState) {
	c.initialStates[qubit] = state
}

// QubitInitialState returns the prepared state of a qubit, ground state
// by default.
func (c *Circuit) QubitInitialState(qubit int) InitialState {
	if state, ok := c.initialStates[qubit]; ok {
		return state
	}
	return StateZero
}
