package registry

import "github.com/qutech-delft/circuitgraph/circuit"

// RepetitionRegistry maps caller-chosen labels to repetition counts,
// defaulting to one for unknown labels.
type RepetitionRegistry struct {
	values map[string]int
}

// NewRepetitionRegistry creates an empty registry.
func NewRepetitionRegistry() *RepetitionRegistry {
	return &RepetitionRegistry{values: make(map[string]int)}
}

// Set stores a repetition count under label.
func (r *RepetitionRegistry) Set(label string, count int) {
	r.values[label] = count
}

// Get returns the count stored under label, one when absent.
func (r *RepetitionRegistry) Get(label string) int {
	if count, ok := r.values[label]; ok {
		return count
	}
	return 1
}

// RegistryRepetitionStrategy resolves a repetition count from a labeled
// registry entry at the moment modifiers are applied.
type RegistryRepetitionStrategy struct {
	Registry *RepetitionRegistry
	Label    string
}

func (s RegistryRepetitionStrategy) RepetitionCount(circuit.Operation) int {
	return s.Registry.Get(s.Label)
}
