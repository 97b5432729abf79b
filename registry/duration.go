package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qutech-delft/circuitgraph/circuit"
)

// DurationKey names a configurable default duration. The string values
// double as the YAML configuration keys.
type DurationKey string

const (
	KeyReadoutDuration   DurationKey = "default_allocated_readout_duration"
	KeyMicrowaveDuration DurationKey = "default_allocated_microwave_duration"
	KeyFluxDuration      DurationKey = "default_allocated_flux_duration"
	KeyResetDuration     DurationKey = "default_allocated_reset_duration"
	KeyBarrierDuration   DurationKey = "default_allocated_barrier_duration"
)

// DurationTable holds the shared default durations consulted by catalog
// operations. Lookups of unknown keys resolve to zero.
type DurationTable struct {
	values map[DurationKey]float64
}

// DefaultDurationTable creates a table with the built-in defaults.
func DefaultDurationTable() *DurationTable {
	return &DurationTable{values: map[DurationKey]float64{
		KeyReadoutDuration:   2.0,
		KeyMicrowaveDuration: 1.0,
		KeyFluxDuration:      1.0,
		KeyResetDuration:     2.0,
		KeyBarrierDuration:   0.5,
	}}
}

// Get returns the duration stored under key, zero when absent.
func (t *DurationTable) Get(key DurationKey) float64 {
	return t.values[key]
}

// Set stores a duration under key.
func (t *DurationTable) Set(key DurationKey, value float64) {
	t.values[key] = value
}

// LoadDurationTable reads a YAML mapping of duration keys to values and
// overlays it on the built-in defaults. Keys absent from the file keep
// their default.
func LoadDurationTable(path string) (*DurationTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read duration config: %w", err)
	}
	overrides := make(map[DurationKey]float64)
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse duration config %s: %w", path, err)
	}
	table := DefaultDurationTable()
	for key, value := range overrides {
		table.Set(key, value)
	}
	return table, nil
}

// TableDurationStrategy resolves an operation duration from a shared
// duration table on every call.
type TableDurationStrategy struct {
	Table *DurationTable
	Key   DurationKey
}

func (s TableDurationStrategy) VariableDuration(circuit.Operation) float64 {
	return s.Table.Get(s.Key)
}

// DurationRegistry maps caller-chosen labels to durations, defaulting to
// zero for unknown labels.
type DurationRegistry struct {
	values map[string]float64
}

// NewDurationRegistry creates an empty registry.
func NewDurationRegistry() *DurationRegistry {
	return &DurationRegistry{values: make(map[string]float64)}
}

// Set stores a duration under label.
func (r *DurationRegistry) Set(label string, value float64) {
	r.values[label] = value
}

// Get returns the duration stored under label, zero when absent.
func (r *DurationRegistry) Get(label string) float64 {
	return r.values[label]
}

// RegistryDurationStrategy resolves an operation duration from a labeled
// registry entry on every call.
type RegistryDurationStrategy struct {
	Registry *DurationRegistry
	Label    string
}

func (s RegistryDurationStrategy) VariableDuration(circuit.Operation) float64 {
	return s.Registry.Get(s.Label)
}
