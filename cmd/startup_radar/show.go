package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jonathan/startup-radar/internal/config"
	"github.com/jonathan/startup-radar/internal/observability"
	"github.com/jonathan/startup-radar/internal/types"
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one startup by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid startup ID %q", args[0])
			}

			startup, err := a.findStartup(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, startup)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintStartup(startup)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	return cmd
}

// findStartup looks one record up by ID. Database sources are queried
// directly; file and URL sources are loaded in full.
func (a *app) findStartup(ctx context.Context, id int64) (*types.Startup, error) {
	switch a.cfg.Source {
	case config.SourcePostgres, config.SourceSQLite:
		store, err := a.openStore(ctx)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		startup, err := store.GetStartup(ctx, id)
		if err != nil {
			return nil, err
		}
		if startup == nil {
			return nil, fmt.Errorf("startup not found: %d", id)
		}
		return startup, nil
	default:
		snap, err := a.loadSnapshot(ctx)
		if err != nil {
			return nil, err
		}
		startup, ok := snap.Find(id)
		if !ok {
			return nil, fmt.Errorf("startup not found: %d", id)
		}
		return &startup, nil
	}
}
