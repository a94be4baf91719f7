package main

import (
	"encoding/json"

	"github.com/jonathan/startup-radar/internal/catalog"
	"github.com/jonathan/startup-radar/internal/observability"
	"github.com/jonathan/startup-radar/internal/types"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		req    types.SearchRequest
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Filter startups by text, location, stage and company size",
		Long: `Print the startups matching every given constraint. Values of one facet are
alternatives (--stage Seed --stage "Series A" matches either); different facets
must all match. Records whose stage cannot be classified are hidden whenever a
--stage is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := req.Validate(); err != nil {
				return err
			}

			snap, err := a.loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			state := catalog.State{Query: req.Query, Filters: req.Filters()}
			result := catalog.Filter(snap, state)

			if asJSON {
				startups := result.Startups
				if startups == nil {
					startups = []types.Startup{}
				}
				return writeJSON(cmd, types.SearchResponse{
					Startups: startups,
					Total:    result.Total,
					Matched:  result.Matched,
					Query:    state.Query,
					Filters:  state.Filters,
				})
			}

			observability.NewPrinter(cmd.OutOrStdout()).PrintResults(result, state)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&req.Query, "query", "q", "", "Case-insensitive text matched against name, description and industry")
	flags.StringArrayVar(&req.Locations, "location", nil, "Location to include, repeatable")
	flags.StringArrayVar(&req.Stages, "stage", nil, "Funding stage to include (Pre-Seed, Seed, Series A..F), repeatable")
	flags.StringArrayVar(&req.CompanySizes, "size", nil, "Company size to include, repeatable")
	flags.BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}

// writeJSON prints v as indented JSON to the command's output.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
