package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qutech-delft/circuitgraph/internal/store"
	"github.com/qutech-delft/circuitgraph/render"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	DemoOptions
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo circuit schedule",
		Long: `Render the resolved schedule of the built-in parity check circuit.

Timing is resolved lazily from the relation graph; duration overrides
from a YAML config apply before resolution.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Durations, "durations", "", "YAML duration config path")
	cmd.Flags().IntVar(&opts.Rounds, "rounds", 1, "parity check repetitions")

	return cmd
}

func runRender(opts *RenderOptions, cmd *cobra.Command) error {
	c, err := buildDemoCircuit(opts.DemoOptions)
	if err != nil {
		return err
	}
	operations := c.Operations()

	if opts.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "resolved %d operation(s) over %d qubit(s)\n",
			len(operations), c.NumQubits())
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(store.SnapshotOperations(operations))
	}

	fmt.Fprint(cmd.OutOrStdout(), render.Schedule("parity_check", operations))
	return nil
}
