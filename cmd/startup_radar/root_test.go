package main

import (
	"testing"

	"github.com/jonathan/startup-radar/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name       string
		app        app
		base       config.Config
		wantSource string
	}{
		{
			name:       "no flags keeps base",
			base:       config.Config{Source: config.SourcePostgres},
			wantSource: config.SourcePostgres,
		},
		{
			name:       "file implies file source",
			app:        app{file: "x.json"},
			base:       config.Config{Source: config.SourcePostgres},
			wantSource: config.SourceFile,
		},
		{
			name:       "url implies url source",
			app:        app{urls: []string{"http://a"}},
			wantSource: config.SourceURL,
		},
		{
			name:       "sqlite implies sqlite source",
			app:        app{sqlitePath: "radar.db"},
			wantSource: config.SourceSQLite,
		},
		{
			name:       "explicit source wins",
			app:        app{source: config.SourceSQLite, file: "x.json"},
			wantSource: config.SourceSQLite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.base
			tt.app.applyFlags(&cfg)
			assert.Equal(t, tt.wantSource, cfg.Source)
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "search", "filters", "stats", "show", "import"} {
		assert.Contains(t, names, want)
	}
}
