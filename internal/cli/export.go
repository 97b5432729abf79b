package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qutech-delft/circuitgraph/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	DemoOptions
	DB   string
	Name string
}

// ExportResult summarizes one schedule export.
type ExportResult struct {
	ScheduleID int64  `json:"schedule_id"`
	Name       string `json:"name"`
	Operations int    `json:"operations"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the demo circuit schedule to SQLite",
		Long: `Resolve the built-in parity check circuit and export the schedule
snapshot to a SQLite database.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "schedules.db", "SQLite database path")
	cmd.Flags().StringVar(&opts.Name, "name", "parity_check", "schedule name")
	cmd.Flags().StringVar(&opts.Durations, "durations", "", "YAML duration config path")
	cmd.Flags().IntVar(&opts.Rounds, "rounds", 1, "parity check repetitions")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	c, err := buildDemoCircuit(opts.DemoOptions)
	if err != nil {
		return err
	}
	operations := c.Operations()

	s, err := store.Open(opts.DB)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.WriteSchedule(cmd.Context(), opts.Name, c.NumQubits(), operations)
	if err != nil {
		return err
	}

	result := ExportResult{ScheduleID: id, Name: opts.Name, Operations: len(operations)}
	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "exported schedule %q (%d operations) as id %d to %s\n",
		result.Name, result.Operations, result.ScheduleID, opts.DB)
	return nil
}
