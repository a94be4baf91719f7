package main

import (
	"github.com/jonathan/startup-radar/internal/catalog"
	"github.com/jonathan/startup-radar/internal/observability"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the directory: startups tracked, funding, industries and stages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			stats := catalog.ComputeStats(snap)
			if asJSON {
				return writeJSON(cmd, stats)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintStats(stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}
