package ops

import (
	"slices"

	"github.com/qutech-delft/circuitgraph/circuit"
)

// SingleQubitGate is a catalog operation occupying one channel of one
// qubit.
type SingleQubitGate struct {
	name     string
	qubit    int
	channel  circuit.QubitChannel
	relation circuit.RelationLink
	duration circuit.DurationStrategy
}

func newSingleQubitGate(name string, qubit int, channel circuit.QubitChannel, cfg gateConfig) *SingleQubitGate {
	return &SingleQubitGate{
		name:     name,
		qubit:    qubit,
		channel:  channel,
		relation: cfg.relation,
		duration: cfg.duration,
	}
}

// Name returns the catalog name of the gate.
func (g *SingleQubitGate) Name() string { return g.name }

// QubitIndex returns the qubit the gate acts on.
func (g *SingleQubitGate) QubitIndex() int { return g.qubit }

// DurationStrategy returns the strategy resolving the gate duration.
func (g *SingleQubitGate) DurationStrategy() circuit.DurationStrategy { return g.duration }

func (g *SingleQubitGate) ChannelIdentifiers() []circuit.ChannelID {
	return []circuit.ChannelID{{Qubit: g.qubit, Channel: g.channel}}
}

func (g *SingleQubitGate) RelationLink() circuit.RelationLink { return g.relation }
func (g *SingleQubitGate) SetRelationLink(link circuit.RelationLink) { g.relation = link }
func (g *SingleQubitGate) StartTime() float64 { return g.relation.StartTime(g.Duration()) }
func (g *SingleQubitGate) Duration() float64 { return g.duration.VariableDuration(g) }
func (g *SingleQubitGate) EndTime() float64 { return g.StartTime() + g.Duration() }
func (g *SingleQubitGate) Repetitions() int { return 1 }
func (g *SingleQubitGate) ApplyModifiers() circuit.Operation { return g }
func (g *SingleQubitGate) Decomposed() []circuit.Operation { return []circuit.Operation{g} }

func (g *SingleQubitGate) Copy(table *circuit.TransferTable) circuit.Operation {
	return &SingleQubitGate{
		name:     g.name,
		qubit:    g.qubit,
		channel:  g.channel,
		relation: g.relation.Copy(table),
		duration: g.duration,
	}
}

// TwoQubitGate is a catalog operation spanning the channels of a control
// and a target qubit.
type TwoQubitGate struct {
	name     string
	control  int
	target   int
	channels []circuit.ChannelID
	relation circuit.RelationLink
	duration circuit.DurationStrategy
}

func newTwoQubitGate(name string, control, target int, channels []circuit.ChannelID, cfg gateConfig) *TwoQubitGate {
	return &TwoQubitGate{
		name:     name,
		control:  control,
		target:   target,
		channels: channels,
		relation: cfg.relation,
		duration: cfg.duration,
	}
}

// Name returns the catalog name of the gate.
func (g *TwoQubitGate) Name() string { return g.name }

// ControlIndex returns the control qubit.
func (g *TwoQubitGate) ControlIndex() int { return g.control }

// TargetIndex returns the target qubit.
func (g *TwoQubitGate) TargetIndex() int { return g.target }

// DurationStrategy returns the strategy resolving the gate duration.
func (g *TwoQubitGate) DurationStrategy() circuit.DurationStrategy { return g.duration }

func (g *TwoQubitGate) ChannelIdentifiers() []circuit.ChannelID { return g.channels }
func (g *TwoQubitGate) RelationLink() circuit.RelationLink { return g.relation }
func (g *TwoQubitGate) SetRelationLink(link circuit.RelationLink) { g.relation = link }
func (g *TwoQubitGate) StartTime() float64 { return g.relation.StartTime(g.Duration()) }
func (g *TwoQubitGate) Duration() float64 { return g.duration.VariableDuration(g) }
func (g *TwoQubitGate) EndTime() float64 { return g.StartTime() + g.Duration() }
func (g *TwoQubitGate) Repetitions() int { return 1 }
func (g *TwoQubitGate) ApplyModifiers() circuit.Operation { return g }
func (g *TwoQubitGate) Decomposed() []circuit.Operation { return []circuit.Operation{g} }

func (g *TwoQubitGate) Copy(table *circuit.TransferTable) circuit.Operation {
	return &TwoQubitGate{
		name:     g.name,
		control:  g.control,
		target:   g.target,
		channels: slices.Clone(g.channels),
		relation: g.relation.Copy(table),
		duration: g.duration,
	}
}

// Measure is a dispersive readout of one qubit, recording an acquisition.
type Measure struct {
	qubit       int
	tag         string
	id          circuit.AcquisitionID
	acquisition circuit.AcquisitionStrategy
	relation    circuit.RelationLink
	duration    circuit.DurationStrategy
}

func newMeasure(qubit int, tag string, acquisition circuit.AcquisitionStrategy, cfg gateConfig) *Measure {
	return &Measure{
		qubit:       qubit,
		tag:         tag,
		id:          circuit.NewAcquisitionID(qubit, tag),
		acquisition: acquisition,
		relation:    cfg.relation,
		duration:    cfg.duration,
	}
}

// Name returns the catalog name of the measurement.
func (m *Measure) Name() string { return "measure" }

// QubitIndex returns the measured qubit.
func (m *Measure) QubitIndex() int { return m.qubit }

// Tag returns the acquisition stream label.
func (m *Measure) Tag() string { return m.tag }

// DurationStrategy returns the strategy resolving the readout duration.
func (m *Measure) DurationStrategy() circuit.DurationStrategy { return m.duration }

func (m *Measure) ChannelIdentifiers() []circuit.ChannelID {
	return []circuit.ChannelID{{Qubit: m.qubit, Channel: circuit.ChannelReadout}}
}

func (m *Measure) RelationLink() circuit.RelationLink { return m.relation }
func (m *Measure) SetRelationLink(link circuit.RelationLink) { m.relation = link }
func (m *Measure) StartTime() float64 { return m.relation.StartTime(m.Duration()) }
func (m *Measure) Duration() float64 { return m.duration.VariableDuration(m) }
func (m *Measure) EndTime() float64 { return m.StartTime() + m.Duration() }
func (m *Measure) Repetitions() int { return 1 }
func (m *Measure) ApplyModifiers() circuit.Operation { return m }
func (m *Measure) Decomposed() []circuit.Operation { return []circuit.Operation{m} }

// AcquisitionIdentifier returns the identifier of this measurement
// instance.
func (m *Measure) AcquisitionIdentifier() circuit.AcquisitionID { return m.id }

// AcquisitionIndex resolves the qubit-level acquisition index.
func (m *Measure) AcquisitionIndex() int {
	return m.acquisition.AcquisitionInfo(m).QubitLevelIndex
}

// CircuitLevelAcquisitionIndex resolves the circuit-level acquisition
// index.
func (m *Measure) CircuitLevelAcquisitionIndex() int {
	return m.acquisition.AcquisitionInfo(m).CircuitLevelIndex
}

// Copy duplicates the measurement with a fresh acquisition identifier in
// the same stream, rebinding the acquisition strategy through the table.
func (m *Measure) Copy(table *circuit.TransferTable) circuit.Operation {
	return &Measure{
		qubit:       m.qubit,
		tag:         m.tag,
		id:          circuit.NewAcquisitionID(m.qubit, m.tag),
		acquisition: m.acquisition.Copy(table),
		relation:    m.relation.Copy(table),
		duration:    m.duration,
	}
}

// Barrier fences a set of qubits, claiming every lane of each.
type Barrier struct {
	qubits   []int
	relation circuit.RelationLink
	duration circuit.DurationStrategy
}

func newBarrier(qubits []int, cfg gateConfig) *Barrier {
	return &Barrier{qubits: qubits, relation: cfg.relation, duration: cfg.duration}
}

// Name returns the catalog name of the barrier.
func (b *Barrier) Name() string { return "barrier" }

// QubitIndices returns the fenced qubits.
func (b *Barrier) QubitIndices() []int { return b.qubits }

func (b *Barrier) ChannelIdentifiers() []circuit.ChannelID {
	ids := make([]circuit.ChannelID, 0, len(b.qubits))
	for _, qubit := range b.qubits {
		ids = append(ids, circuit.ChannelID{Qubit: qubit, Channel: circuit.ChannelAll})
	}
	return ids
}

func (b *Barrier) RelationLink() circuit.RelationLink { return b.relation }
func (b *Barrier) SetRelationLink(link circuit.RelationLink) { b.relation = link }
func (b *Barrier) StartTime() float64 { return b.relation.StartTime(b.Duration()) }
func (b *Barrier) Duration() float64 { return b.duration.VariableDuration(b) }
func (b *Barrier) EndTime() float64 { return b.StartTime() + b.Duration() }
func (b *Barrier) Repetitions() int { return 1 }
func (b *Barrier) ApplyModifiers() circuit.Operation { return b }
func (b *Barrier) Decomposed() []circuit.Operation { return []circuit.Operation{b} }

// Copy duplicates the barrier without its relation; re-adding the copy to
// a circuit synthesizes a fresh ordering against the copied content.
func (b *Barrier) Copy(*circuit.TransferTable) circuit.Operation {
	return &Barrier{
		qubits:   slices.Clone(b.qubits),
		relation: circuit.Link{},
		duration: b.duration,
	}
}
