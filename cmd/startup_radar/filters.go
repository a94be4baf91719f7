package main

import (
	"github.com/jonathan/startup-radar/internal/catalog"
	"github.com/jonathan/startup-radar/internal/observability"
	"github.com/spf13/cobra"
)

func newFiltersCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List the selectable locations, stages and company sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			available := catalog.Aggregate(snap)
			if asJSON {
				return writeJSON(cmd, available)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintAvailableFilters(available)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}
