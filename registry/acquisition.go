package registry

import "github.com/qutech-delft/circuitgraph/circuit"

// AcquisitionRegistry resolves acquisition indices by scanning the
// decomposed operations of a reference circuit in schedule order. Every
// lookup is a full scan, which keeps indices correct under any structural
// mutation of the circuit.
type AcquisitionRegistry struct {
	reference circuit.Operation
}

// NewAcquisitionRegistry creates a registry scanning the given circuit.
func NewAcquisitionRegistry(reference circuit.Operation) *AcquisitionRegistry {
	return &AcquisitionRegistry{reference: reference}
}

// Reference returns the scanned circuit.
func (r *AcquisitionRegistry) Reference() circuit.Operation { return r.reference }

// Get resolves the qubit-level and circuit-level index of the given
// acquisition. Both indices are -1 when the acquisition is not part of
// the reference circuit.
func (r *AcquisitionRegistry) Get(id circuit.AcquisitionID) circuit.AcquisitionInfo {
	qubitLevel, circuitLevel := 0, 0
	for _, op := range r.reference.Decomposed() {
		acq, ok := op.(circuit.AcquisitionOperation)
		if !ok {
			continue
		}
		candidate := acq.AcquisitionIdentifier()
		if candidate == id {
			return circuit.AcquisitionInfo{
				QubitLevelIndex:   qubitLevel,
				CircuitLevelIndex: circuitLevel,
			}
		}
		if candidate.QubitIndex == id.QubitIndex {
			qubitLevel++
		}
		circuitLevel++
	}
	return circuit.AcquisitionInfo{QubitLevelIndex: -1, CircuitLevelIndex: -1}
}

// RegistryAcquisitionStrategy resolves acquisition indices against the
// circuit held by an acquisition registry.
type RegistryAcquisitionStrategy struct {
	Registry *AcquisitionRegistry
}

func (s RegistryAcquisitionStrategy) AcquisitionInfo(op circuit.AcquisitionOperation) circuit.AcquisitionInfo {
	return s.Registry.Get(op.AcquisitionIdentifier())
}

// Copy rebinds the strategy to the transferred reference circuit when the
// table holds one, so measurements copied into a new circuit index into
// that circuit.
func (s RegistryAcquisitionStrategy) Copy(table *circuit.TransferTable) circuit.AcquisitionStrategy {
	reference := s.Registry.reference
	if transferred, ok := table.Resolve(reference); ok {
		reference = transferred
	}
	return RegistryAcquisitionStrategy{Registry: NewAcquisitionRegistry(reference)}
}
