package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qutech-delft/circuitgraph/circuit"
)

// TestDefaultDurationTable verifies the built-in defaults and the zero
// fallback for unknown keys.
func TestDefaultDurationTable(t *testing.T) {
	table := DefaultDurationTable()

	assert.Equal(t, 2.0, table.Get(KeyReadoutDuration))
	assert.Equal(t, 1.0, table.Get(KeyMicrowaveDuration))
	assert.Equal(t, 1.0, table.Get(KeyFluxDuration))
	assert.Equal(t, 2.0, table.Get(KeyResetDuration))
	assert.Equal(t, 0.5, table.Get(KeyBarrierDuration))
	assert.Equal(t, 0.0, table.Get(DurationKey("unknown")))
}

// TestLoadDurationTable verifies YAML overrides overlay the defaults.
func TestLoadDurationTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "durations.yaml")
	config := "default_allocated_readout_duration: 4.5\ndefault_allocated_flux_duration: 0.25\n"
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))

	table, err := LoadDurationTable(path)
	require.NoError(t, err)

	assert.Equal(t, 4.5, table.Get(KeyReadoutDuration))
	assert.Equal(t, 0.25, table.Get(KeyFluxDuration))
	assert.Equal(t, 1.0, table.Get(KeyMicrowaveDuration), "absent keys keep their default")
}

// TestLoadDurationTable_Missing verifies a missing file surfaces the read
// error.
func TestLoadDurationTable_Missing(t *testing.T) {
	_, err := LoadDurationTable(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

// TestTableDurationStrategy verifies the strategy re-reads the table on
// every resolution.
func TestTableDurationStrategy(t *testing.T) {
	table := DefaultDurationTable()
	strategy := TableDurationStrategy{Table: table, Key: KeyMicrowaveDuration}

	assert.Equal(t, 1.0, strategy.VariableDuration(nil))
	table.Set(KeyMicrowaveDuration, 3.0)
	assert.Equal(t, 3.0, strategy.VariableDuration(nil))
}

// TestDurationRegistry verifies labeled lookups default to zero.
func TestDurationRegistry(t *testing.T) {
	reg := NewDurationRegistry()
	assert.Equal(t, 0.0, reg.Get("idle"))

	reg.Set("idle", 1.5)
	strategy := RegistryDurationStrategy{Registry: reg, Label: "idle"}
	assert.Equal(t, 1.5, strategy.VariableDuration(nil))
}

// TestRepetitionRegistry verifies labeled lookups default to one.
func TestRepetitionRegistry(t *testing.T) {
	reg := NewRepetitionRegistry()
	assert.Equal(t, 1, reg.Get("rounds"))

	reg.Set("rounds", 7)
	strategy := RegistryRepetitionStrategy{Registry: reg, Label: "rounds"}
	assert.Equal(t, 7, strategy.RepetitionCount(nil))
}

// fakeAcquisition is a minimal acquisition operation for registry tests.
type fakeAcquisition struct {
	id       circuit.AcquisitionID
	relation circuit.RelationLink
}

func newFakeAcquisition(qubit int, tag string) *fakeAcquisition {
	return &fakeAcquisition{id: circuit.NewAcquisitionID(qubit, tag), relation: circuit.Link{}}
}

func (f *fakeAcquisition) ChannelIdentifiers() []circuit.ChannelID {
	return []circuit.ChannelID{{Qubit: f.id.QubitIndex, Channel: circuit.ChannelReadout}}
}

func (f *fakeAcquisition) RelationLink() circuit.RelationLink { return f.relation }
func (f *fakeAcquisition) SetRelationLink(link circuit.RelationLink) { f.relation = link }
func (f *fakeAcquisition) StartTime() float64 { return f.relation.StartTime(f.Duration()) }
func (f *fakeAcquisition) Duration() float64 { return 2 }
func (f *fakeAcquisition) EndTime() float64 { return f.StartTime() + f.Duration() }
func (f *fakeAcquisition) Repetitions() int { return 1 }
func (f *fakeAcquisition) ApplyModifiers() circuit.Operation { return f }
func (f *fakeAcquisition) Decomposed() []circuit.Operation { return []circuit.Operation{f} }
func (f *fakeAcquisition) AcquisitionIdentifier() circuit.AcquisitionID { return f.id }
func (f *fakeAcquisition) AcquisitionIndex() int { return 0 }
func (f *fakeAcquisition) CircuitLevelAcquisitionIndex() int { return 0 }

func (f *fakeAcquisition) Copy(table *circuit.TransferTable) circuit.Operation {
	return &fakeAcquisition{
		id:       circuit.NewAcquisitionID(f.id.QubitIndex, f.id.Tag),
		relation: f.relation.Copy(table),
	}
}

// TestAcquisitionRegistry verifies qubit-level and circuit-level index
// resolution over a composite scan.
func TestAcquisitionRegistry(t *testing.T) {
	root := circuit.NewComposite()
	m0 := newFakeAcquisition(0, "calibration")
	m1 := newFakeAcquisition(1, "calibration")
	m2 := newFakeAcquisition(0, "calibration")
	root.Add(m0).Add(m1).Add(m2)

	reg := NewAcquisitionRegistry(root)

	assert.Equal(t, circuit.AcquisitionInfo{QubitLevelIndex: 0, CircuitLevelIndex: 0},
		reg.Get(m0.AcquisitionIdentifier()))
	assert.Equal(t, circuit.AcquisitionInfo{QubitLevelIndex: 0, CircuitLevelIndex: 1},
		reg.Get(m1.AcquisitionIdentifier()))
	assert.Equal(t, circuit.AcquisitionInfo{QubitLevelIndex: 1, CircuitLevelIndex: 2},
		reg.Get(m2.AcquisitionIdentifier()))

	unknown := circuit.NewAcquisitionID(0, "calibration")
	assert.Equal(t, circuit.AcquisitionInfo{QubitLevelIndex: -1, CircuitLevelIndex: -1},
		reg.Get(unknown), "a fresh unique component never matches")
}

// TestRegistryAcquisitionStrategy_Copy verifies the strategy rebinds to a
// transferred reference circuit.
func TestRegistryAcquisitionStrategy_Copy(t *testing.T) {
	original := circuit.NewComposite()
	replacement := circuit.NewComposite()
	table := circuit.NewTransferTable(circuit.NewWarningLog())
	table.Put(original, replacement)

	strategy := RegistryAcquisitionStrategy{Registry: NewAcquisitionRegistry(original)}
	rebound := strategy.Copy(table).(RegistryAcquisitionStrategy)

	assert.Same(t, replacement, rebound.Registry.Reference())

	unbound := strategy.Copy(circuit.NewTransferTable(nil)).(RegistryAcquisitionStrategy)
	assert.Same(t, original, unbound.Registry.Reference())
}
