package ops

import (
	"github.com/qutech-delft/circuitgraph/circuit"
	"github.com/qutech-delft/circuitgraph/registry"
)

// Factory constructs catalog operations bound to a duration table. A nil
// table falls back to the built-in defaults.
type Factory struct {
	durations *registry.DurationTable
}

// NewFactory creates a factory resolving gate durations through table.
func NewFactory(table *registry.DurationTable) *Factory {
	if table == nil {
		table = registry.DefaultDurationTable()
	}
	return &Factory{durations: table}
}

// Durations returns the bound duration table.
func (f *Factory) Durations() *registry.DurationTable { return f.durations }

// GateOption configures the relation or duration of a catalog operation.
type GateOption func(*gateConfig)

type gateConfig struct {
	relation circuit.RelationLink
	duration circuit.DurationStrategy
}

func newGateConfig(fallback circuit.DurationStrategy, opts []GateOption) gateConfig {
	cfg := gateConfig{relation: circuit.Link{}, duration: fallback}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// FollowedBy anchors the operation after a reference operation.
func FollowedBy(ref circuit.Operation) GateOption {
	return WithRelation(circuit.NewLink(ref, circuit.FollowedBy))
}

// WithRelation anchors the operation through an explicit relation link.
func WithRelation(link circuit.RelationLink) GateOption {
	return func(cfg *gateConfig) { cfg.relation = link }
}

// WithDuration overrides the duration strategy of the operation.
func WithDuration(strategy circuit.DurationStrategy) GateOption {
	return func(cfg *gateConfig) { cfg.duration = strategy }
}

func (f *Factory) tableDuration(key registry.DurationKey) circuit.DurationStrategy {
	return registry.TableDurationStrategy{Table: f.durations, Key: key}
}

// Reset initializes a qubit, claiming every lane while it runs.
func (f *Factory) Reset(qubit int, opts ...GateOption) *SingleQubitGate {
	return f.single("reset", qubit, circuit.ChannelAll, registry.KeyResetDuration, opts)
}

// Wait idles one channel of a qubit for a fixed duration.
func (f *Factory) Wait(qubit int, channel circuit.QubitChannel, duration float64, opts ...GateOption) *SingleQubitGate {
	opts = append([]GateOption{WithDuration(circuit.FixedDurationStrategy{Duration: duration})}, opts...)
	cfg := newGateConfig(nil, opts)
	return newSingleQubitGate("wait", qubit, channel, cfg)
}

// Identity performs a timed no-op on the microwave channel.
func (f *Factory) Identity(qubit int, opts ...GateOption) *SingleQubitGate {
	return f.microwave("identity", qubit, opts)
}

// Hadamard applies the Hadamard gate.
func (f *Factory) Hadamard(qubit int, opts ...GateOption) *SingleQubitGate {
	return f.microwave("hadamard", qubit, opts)
}

// Rx180 rotates the qubit by pi around the x axis.
func (f *Factory) Rx180(qubit int, opts ...GateOption) *SingleQubitGate {
	return f.microwave("rx180", qubit, opts)
}

// Rx90 rotates the qubit by pi/2 around the x axis.
func (f *Factory) Rx90(qubit int, opts ...GateOption) *SingleQubitGate {
	return f.microwave("rx90", qubit, opts)
}

// Rxm90 rotates the qubit by -pi/2 around the x axis.
func (f *Factory) Rxm90(qubit int, opts ...GateOption) *SingleQubitGate {
	return f.microwave("rxm90", qubit, opts)
}

// Ry180 rotates the qubit by pi around the y axis.
func (f *Factory) Ry180(qubit int, opts ...GateOption) *SingleQubitGate {
	return f.microwave("ry180", qubit, opts)
}

// Ry90 rotates the qubit by pi/2 around the y axis.
func (f *Factory) Ry90(qubit int, opts ...GateOption) *SingleQubitGate {
	return f.microwave("ry90", qubit, opts)
}

// Rym90 rotates the qubit by -pi/2 around the y axis.
func (f *Factory) Rym90(qubit int, opts ...GateOption) *SingleQubitGate {
	return f.microwave("rym90", qubit, opts)
}

// Rphi90 rotates the qubit by pi/2 around an equatorial axis.
func (f *Factory) Rphi90(qubit int, opts ...GateOption) *SingleQubitGate {
	return f.microwave("rphi90", qubit, opts)
}

// VirtualPhase applies a frame update on the microwave channel. Frame
// updates take no time on hardware, so the default duration is zero.
func (f *Factory) VirtualPhase(qubit int, opts ...GateOption) *SingleQubitGate {
	cfg := newGateConfig(circuit.FixedDurationStrategy{}, opts)
	return newSingleQubitGate("virtual_phase", qubit, circuit.ChannelMicrowave, cfg)
}

// VirtualPark holds a qubit at its parking flux point.
func (f *Factory) VirtualPark(qubit int, opts ...GateOption) *SingleQubitGate {
	return f.single("virtual_park", qubit, circuit.ChannelFlux, registry.KeyFluxDuration, opts)
}

// VirtualVacant replaces a masked operation, idling every lane of the
// qubit for the duration of the operation it stands in for.
func (f *Factory) VirtualVacant(qubit int, duration circuit.DurationStrategy, link circuit.RelationLink) *SingleQubitGate {
	cfg := gateConfig{relation: link, duration: duration}
	if cfg.relation == nil {
		cfg.relation = circuit.Link{}
	}
	return newSingleQubitGate("vacant", qubit, circuit.ChannelAll, cfg)
}

// CPhase applies a conditional phase between two qubits through a flux
// excursion, claiming the flux and microwave lanes of both.
func (f *Factory) CPhase(control, target int, opts ...GateOption) *TwoQubitGate {
	cfg := newGateConfig(f.tableDuration(registry.KeyFluxDuration), opts)
	return newTwoQubitGate("cphase", control, target, []circuit.ChannelID{
		{Qubit: control, Channel: circuit.ChannelFlux},
		{Qubit: control, Channel: circuit.ChannelMicrowave},
		{Qubit: target, Channel: circuit.ChannelFlux},
		{Qubit: target, Channel: circuit.ChannelMicrowave},
	}, cfg)
}

// TwoQubitBlock claims every lane of both qubits, serializing anything
// that touches either qubit.
func (f *Factory) TwoQubitBlock(control, target int, opts ...GateOption) *TwoQubitGate {
	cfg := newGateConfig(f.tableDuration(registry.KeyFluxDuration), opts)
	return newTwoQubitGate("two_qubit_block", control, target, []circuit.ChannelID{
		{Qubit: control, Channel: circuit.ChannelAll},
		{Qubit: target, Channel: circuit.ChannelAll},
	}, cfg)
}

// DispersiveMeasure reads out a qubit, recording an acquisition under the
// given tag.
func (f *Factory) DispersiveMeasure(qubit int, acquisition circuit.AcquisitionStrategy, tag string, opts ...GateOption) *Measure {
	cfg := newGateConfig(f.tableDuration(registry.KeyReadoutDuration), opts)
	return newMeasure(qubit, tag, acquisition, cfg)
}

// Barrier fences the listed qubits: every later operation on any of them
// starts after the barrier.
func (f *Factory) Barrier(qubits []int, opts ...GateOption) *Barrier {
	cfg := newGateConfig(f.tableDuration(registry.KeyBarrierDuration), opts)
	return newBarrier(qubits, cfg)
}

func (f *Factory) microwave(name string, qubit int, opts []GateOption) *SingleQubitGate {
	return f.single(name, qubit, circuit.ChannelMicrowave, registry.KeyMicrowaveDuration, opts)
}

func (f *Factory) single(name string, qubit int, channel circuit.QubitChannel, key registry.DurationKey, opts []GateOption) *SingleQubitGate {
	cfg := newGateConfig(f.tableDuration(key), opts)
	return newSingleQubitGate(name, qubit, channel, cfg)
}
