package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/startup-radar/internal/types"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS startups (
	id               INTEGER PRIMARY KEY,
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
	investors        TEXT,
	scraped_at       TEXT,
	created_at       TEXT,
	updated_at       TEXT
)`

// SQLiteDB is a Store backed by a local SQLite file.
type SQLiteDB struct {
	db *sql.DB
}

// OpenSQLite opens the SQLite database at path and creates the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteDB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// modernc sqlite serializes writers; one connection avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.ExecContext(ctx, sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to create startups table: %w", err)
	}
	return &SQLiteDB{db: sqlDB}, nil
}

// Close closes the database handle.
func (s *SQLiteDB) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

// ListStartups returns every startup ordered by ID.
func (s *SQLiteDB) ListStartups(ctx context.Context) ([]types.Startup, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+columnList()+` FROM startups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list startups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var startups []types.Startup
	for rows.Next() {
		st, err := scanSQLiteStartup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan startup: %w", err)
		}
		startups = append(startups, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate startups: %w", err)
	}
	return startups, nil
}

// GetStartup retrieves a startup by ID. A missing row yields (nil, nil).
func (s *SQLiteDB) GetStartup(ctx context.Context, id int64) (*types.Startup, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columnList()+` FROM startups WHERE id = ?`, id)
	st, err := scanSQLiteStartup(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get startup: %w", err)
	}
	return st, nil
}

// CountStartups returns the number of stored startups.
func (s *SQLiteDB) CountStartups(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM startups`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count startups: %w", err)
	}
	return n, nil
}

// UpsertStartups inserts or replaces startups by ID inside one transaction.
// On any failure the transaction is rolled back and the count is 0.
func (s *SQLiteDB) UpsertStartups(ctx context.Context, records []types.Startup) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO startups (`+columnList()+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name, description = excluded.description, location = excluded.location,
		   stage = excluded.stage, industry = excluded.industry, work_type = excluded.work_type,
		   company_size = excluded.company_size, logo_url = excluded.logo_url,
		   header_image_url = excluded.header_image_url, website_url = excluded.website_url,
		   jobs_url = excluded.jobs_url, funding_amount = excluded.funding_amount,
		   funding_round = excluded.funding_round, investors = excluded.investors,
		   scraped_at = excluded.scraped_at, updated_at = excluded.updated_at`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for i := range records {
		st := &records[i]
		investors, err := encodeInvestors(st.Investors)
		if err != nil {
			return 0, err
		}
		args := []any{st.ID, st.Name}
		args = append(args, optionalText(st)...)
		args = append(args, investors, formatTime(st.ScrapedAt), formatTime(&now), formatTime(&now))
		if st.CreatedAt != nil {
			args[len(args)-2] = formatTime(st.CreatedAt)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to upsert startup %d: %w", st.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit upsert: %w", err)
	}
	return len(records), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteStartup(row rowScanner) (*types.Startup, error) {
	var (
		st                              types.Startup
		text                            nullableText
		investors                       sql.NullString
		scrapedAt, createdAt, updatedAt sql.NullString
	)
	targets := []any{&st.ID, &st.Name}
	targets = append(targets, text.targets()...)
	targets = append(targets, &investors, &scrapedAt, &createdAt, &updatedAt)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	text.apply(&st)

	if investors.Valid && investors.String != "" {
		if err := json.Unmarshal([]byte(investors.String), &st.Investors); err != nil {
			return nil, fmt.Errorf("failed to decode investors for startup %d: %w", st.ID, err)
		}
	}
	st.ScrapedAt = parseTime(scrapedAt)
	st.CreatedAt = parseTime(createdAt)
	st.UpdatedAt = parseTime(updatedAt)
	return &st, nil
}

func encodeInvestors(investors []string) (any, error) {
	if investors == nil {
		return nil, nil
	}
	data, err := json.Marshal(investors)
	if err != nil {
		return nil, fmt.Errorf("failed to encode investors: %w", err)
	}
	return string(data), nil
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil
	}
	return &t
}
