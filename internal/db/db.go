// Package db provides the startup record stores: PostgreSQL via pgx and a
// local SQLite file.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/startup-radar/internal/types"
)

// postgresSchema creates the startups table when missing.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS startups (
	id               BIGINT PRIMARY KEY,
	name             TEXT NOT NULL,
	description      TEXT,
	location         TEXT,
	stage            TEXT,
	industry         TEXT,
	work_type        TEXT,
	company_size     TEXT,
	logo_url         TEXT,
	header_image_url TEXT,
	website_url      TEXT,
	jobs_url         TEXT,
	funding_amount   TEXT,
	funding_round    TEXT,
	investors        TEXT[],
	scraped_at       TIMESTAMPTZ,
	created_at       TIMESTAMPTZ DEFAULT NOW(),
	updated_at       TIMESTAMPTZ DEFAULT NOW()
)`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the startups table if it does not exist
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create startups table: %w", err)
	}
	return nil
}

// ListStartups returns every startup ordered by ID
func (db *DB) ListStartups(ctx context.Context) ([]types.Startup, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+columnList()+` FROM startups ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list startups: %w", err)
	}
	defer rows.Close()

	var startups []types.Startup
	for rows.Next() {
		s, err := scanPostgresStartup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan startup: %w", err)
		}
		startups = append(startups, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate startups: %w", err)
	}
	return startups, nil
}

// GetStartup retrieves a startup by ID
func (db *DB) GetStartup(ctx context.Context, id int64) (*types.Startup, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+columnList()+` FROM startups WHERE id = $1`,
		id,
	)
	s, err := scanPostgresStartup(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get startup: %w", err)
	}
	return s, nil
}

// CountStartups returns the number of stored startups
func (db *DB) CountStartups(ctx context.Context) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM startups`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count startups: %w", err)
	}
	return n, nil
}

// UpsertStartups inserts or replaces startups by ID in a single batch. The
// batch runs as one implicit transaction, so a failure reports 0 rows.
func (db *DB) UpsertStartups(ctx context.Context, records []types.Startup) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for i := range records {
		s := &records[i]
		args := []any{s.ID, s.Name}
		args = append(args, optionalText(s)...)
		args = append(args, s.Investors, s.ScrapedAt, timeOrNow(s.CreatedAt))
		batch.Queue(
			`INSERT INTO startups (`+columnList()+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW())
			 ON CONFLICT (id) DO UPDATE SET
			   name = EXCLUDED.name, description = EXCLUDED.description, location = EXCLUDED.location,
			   stage = EXCLUDED.stage, industry = EXCLUDED.industry, work_type = EXCLUDED.work_type,
			   company_size = EXCLUDED.company_size, logo_url = EXCLUDED.logo_url,
			   header_image_url = EXCLUDED.header_image_url, website_url = EXCLUDED.website_url,
			   jobs_url = EXCLUDED.jobs_url, funding_amount = EXCLUDED.funding_amount,
			   funding_round = EXCLUDED.funding_round, investors = EXCLUDED.investors,
			   scraped_at = EXCLUDED.scraped_at, updated_at = NOW()`,
			args...,
		)
	}

	results := db.pool.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()

	for i := range records {
		if _, err := results.Exec(); err != nil {
			return 0, fmt.Errorf("failed to upsert startup %d: %w", records[i].ID, err)
		}
	}
	return len(records), nil
}

func scanPostgresStartup(row pgx.Row) (*types.Startup, error) {
	var (
		s         types.Startup
		text      nullableText
		investors []string
	)
	targets := []any{&s.ID, &s.Name}
	targets = append(targets, text.targets()...)
	targets = append(targets, &investors, &s.ScrapedAt, &s.CreatedAt, &s.UpdatedAt)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	text.apply(&s)
	s.Investors = investors
	return &s, nil
}

func timeOrNow(t *time.Time) time.Time {
	if t == nil {
		return time.Now().UTC()
	}
	return *t
}
