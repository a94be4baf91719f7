package main

import (
	"context"
	"fmt"

	"github.com/jonathan/startup-radar/internal/catalog"
	"github.com/jonathan/startup-radar/internal/config"
	"github.com/jonathan/startup-radar/internal/db"
	"github.com/jonathan/startup-radar/internal/fetch"
	"github.com/jonathan/startup-radar/internal/server"
	"github.com/jonathan/startup-radar/internal/types"
	"go.uber.org/zap"
)

// openStore connects to the configured database source.
func (a *app) openStore(ctx context.Context) (db.Store, error) {
	if err := a.cfg.RequireSource(); err != nil {
		return nil, err
	}

	switch a.cfg.Source {
	case config.SourcePostgres:
		database, err := db.Connect(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, err
		}
		return database, nil
	case config.SourceSQLite:
		return db.OpenSQLite(ctx, a.cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("source %q is not a database; use --source db or --source sqlite", a.cfg.Source)
	}
}

// newLoader returns a loader for the configured source and a func releasing
// whatever it holds open.
func (a *app) newLoader(ctx context.Context) (server.Loader, func(), error) {
	if err := a.cfg.RequireSource(); err != nil {
		return nil, nil, err
	}

	switch a.cfg.Source {
	case config.SourcePostgres, config.SourceSQLite:
		store, err := a.openStore(ctx)
		if err != nil {
			return nil, nil, err
		}
		return store.ListStartups, store.Close, nil
	case config.SourceURL:
		urls, limit := a.cfg.SourceURLs, a.cfg.FetchLimit
		return func(ctx context.Context) ([]types.Startup, error) {
			return fetch.LoadAll(ctx, urls, limit, fetch.DefaultOptions())
		}, func() {}, nil
	default:
		path := a.cfg.File
		return func(context.Context) ([]types.Startup, error) {
			return fetch.LoadFile(path)
		}, func() {}, nil
	}
}

// loadSnapshot loads the records once and wraps them in a snapshot.
func (a *app) loadSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	load, closeFn, err := a.newLoader(ctx)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	records, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load startups: %w", err)
	}

	snap := catalog.NewSnapshot(records)
	a.logger.Debug("startups loaded",
		zap.String("source", a.cfg.Source),
		zap.Int("count", snap.Len()),
	)
	return snap, nil
}
