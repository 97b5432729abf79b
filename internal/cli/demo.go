package cli

import (
	"fmt"

	"github.com/qutech-delft/circuitgraph"
	"github.com/qutech-delft/circuitgraph/circuit"
	"github.com/qutech-delft/circuitgraph/ops"
	"github.com/qutech-delft/circuitgraph/registry"
)

// DemoOptions selects the built-in demonstration circuit.
type DemoOptions struct {
	Durations string // optional YAML duration config
	Rounds    int    // parity check repetitions
}

// buildDemoCircuit assembles a repeated two-qubit parity check round,
// the canonical exercise of channels, relations and repetition.
func buildDemoCircuit(opts DemoOptions) (*circuitgraph.Circuit, error) {
	table := registry.DefaultDurationTable()
	if opts.Durations != "" {
		loaded, err := registry.LoadDurationTable(opts.Durations)
		if err != nil {
			return nil, fmt.Errorf("load durations: %w", err)
		}
		table = loaded
	}
	factory := ops.NewFactory(table)

	rounds := registry.NewRepetitionRegistry()
	if opts.Rounds > 0 {
		rounds.Set("parity_rounds", opts.Rounds)
	}

	c := circuitgraph.New(
		circuitgraph.WithQubits(2),
		circuitgraph.WithRepetition(registry.RegistryRepetitionStrategy{
			Registry: rounds,
			Label:    "parity_rounds",
		}),
	)
	c.AddOperation(factory.Reset(0))
	c.AddOperation(factory.Reset(1))
	c.AddOperation(factory.Hadamard(0))
	cz := c.AddOperation(factory.CPhase(0, 1))
	m0 := factory.DispersiveMeasure(0, c.AcquisitionStrategy(), "parity", ops.FollowedBy(cz))
	c.AddOperation(m0)
	c.AddOperation(factory.DispersiveMeasure(1, c.AcquisitionStrategy(), "parity",
		ops.WithRelation(circuit.NewLink(m0, circuit.JoinedStart))))

	c.ApplyModifiers()
	return c, nil
}
