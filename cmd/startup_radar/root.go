package main

import (
	"fmt"

	"github.com/jonathan/startup-radar/internal/config"
	"github.com/jonathan/startup-radar/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the global flags and the state PersistentPreRunE builds from them.
type app struct {
	configPath string
	verbose    bool
	source     string
	file       string
	urls       []string
	sqlitePath string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "startup_radar",
		Short: "Search and filter a directory of startups",
		Long: "startup_radar loads startup records from PostgreSQL, SQLite, a startups API or a JSON file, " +
			"and filters them by free text, location, funding stage and company size from the CLI or a REST API.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a JSON or YAML config file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&a.source, "source", "", "Record source: db, sqlite, url or file (inferred when empty)")
	flags.StringVar(&a.file, "file", "", "JSON record file (implies --source file)")
	flags.StringSliceVar(&a.urls, "url", nil, "Startups API base URL, repeatable (implies --source url)")
	flags.StringVar(&a.sqlitePath, "sqlite", "", "SQLite database path (overrides SQLITE_PATH)")

	rootCmd.AddCommand(
		newServeCmd(a),
		newSearchCmd(a),
		newFiltersCmd(a),
		newStatsCmd(a),
		newShowCmd(a),
		newImportCmd(a),
	)
	return rootCmd
}

// setup layers flags over the config file over the environment, then builds
// the logger.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	var fileCfg config.Config
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		fileCfg = *loaded
	}

	cfg := fileCfg.MergeWithDefaults(config.FromEnv())
	a.applyFlags(&cfg)
	cfg.Verbose = cfg.Verbose || a.verbose

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("source", cfg.Source),
		zap.Int("fetch_limit", cfg.FetchLimit),
	)
	return nil
}

// applyFlags overrides cfg with explicitly set global flags. A source-specific
// flag selects its source unless --source names another.
func (a *app) applyFlags(cfg *config.Config) {
	implied := ""
	if a.sqlitePath != "" {
		cfg.SQLitePath = a.sqlitePath
		implied = config.SourceSQLite
	}
	if len(a.urls) > 0 {
		cfg.SourceURLs = a.urls
		implied = config.SourceURL
	}
	if a.file != "" {
		cfg.File = a.file
		implied = config.SourceFile
	}

	switch {
	case a.source != "":
		cfg.Source = a.source
	case implied != "":
		cfg.Source = implied
	}
}
