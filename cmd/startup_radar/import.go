package main

import (
	"fmt"

	"github.com/jonathan/startup-radar/internal/fetch"
	"github.com/jonathan/startup-radar/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		fromURL  string
		fromFile string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy startups from an API or JSON file into the configured database",
		Long: `Fetch startups from a startups API (--from-url) or a JSON file (--from-file) and
upsert them by ID into the database selected with --source db or --source sqlite.
Files are validated against the startup record schema first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (fromURL == "") == (fromFile == "") {
				return fmt.Errorf("exactly one of --from-url or --from-file is required")
			}
			ctx := cmd.Context()

			var (
				records []types.Startup
				err     error
			)
			if fromFile != "" {
				records, err = fetch.LoadFile(fromFile)
			} else {
				records, err = fetch.Startups(ctx, fromURL, a.cfg.FetchLimit, fetch.DefaultOptions())
			}
			if err != nil {
				return fmt.Errorf("failed to load startups: %w", err)
			}

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.UpsertStartups(ctx, records)
			if err != nil {
				return err
			}
			total, err := store.CountStartups(ctx)
			if err != nil {
				return err
			}

			a.logger.Info("import complete",
				zap.String("source", a.cfg.Source),
				zap.Int("imported", n),
				zap.Int("stored", total),
			)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d startups (%d stored)\n", n, total)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromURL, "from-url", "", "Startups API base URL to import from")
	cmd.Flags().StringVar(&fromFile, "from-file", "", "JSON record file to import")
	return cmd
}
