package db

import (
	"context"
	"strings"

	"github.com/jonathan/startup-radar/internal/types"
)

// Store is a source of the full startup record list. Stores are only ever
// asked for everything; filtering happens in memory.
type Store interface {
	ListStartups(ctx context.Context) ([]types.Startup, error)
	GetStartup(ctx context.Context, id int64) (*types.Startup, error)
	UpsertStartups(ctx context.Context, records []types.Startup) (int, error)
	CountStartups(ctx context.Context) (int, error)
	Close()
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*SQLiteDB)(nil)
)

// startupColumns is the column order used by every SELECT and INSERT.
var startupColumns = []string{
	"id", "name", "description", "location", "stage", "industry", "work_type",
	"company_size", "logo_url", "header_image_url", "website_url", "jobs_url",
	"funding_amount", "funding_round", "investors", "scraped_at", "created_at", "updated_at",
}

func columnList() string {
	return strings.Join(startupColumns, ", ")
}

// nullableText holds the optional text columns of one row.
type nullableText struct {
	Description, Location, Stage, Industry, WorkType, CompanySize *string
	LogoURL, HeaderImageURL, WebsiteURL, JobsURL                  *string
	FundingAmount, FundingRound                                   *string
}

func (n *nullableText) apply(s *types.Startup) {
	s.Description = deref(n.Description)
	s.Location = deref(n.Location)
	s.Stage = deref(n.Stage)
	s.Industry = deref(n.Industry)
	s.WorkType = deref(n.WorkType)
	s.CompanySize = deref(n.CompanySize)
	s.LogoURL = deref(n.LogoURL)
	s.HeaderImageURL = deref(n.HeaderImageURL)
	s.WebsiteURL = deref(n.WebsiteURL)
	s.JobsURL = deref(n.JobsURL)
	s.FundingAmount = deref(n.FundingAmount)
	s.FundingRound = deref(n.FundingRound)
}

// optionalText values in column order after id and name.
func optionalText(s *types.Startup) []any {
	return []any{
		nullIfEmpty(s.Description), nullIfEmpty(s.Location), nullIfEmpty(s.Stage),
		nullIfEmpty(s.Industry), nullIfEmpty(s.WorkType), nullIfEmpty(s.CompanySize),
		nullIfEmpty(s.LogoURL), nullIfEmpty(s.HeaderImageURL), nullIfEmpty(s.WebsiteURL),
		nullIfEmpty(s.JobsURL), nullIfEmpty(s.FundingAmount), nullIfEmpty(s.FundingRound),
	}
}

func (n *nullableText) targets() []any {
	return []any{
		&n.Description, &n.Location, &n.Stage, &n.Industry, &n.WorkType, &n.CompanySize,
		&n.LogoURL, &n.HeaderImageURL, &n.WebsiteURL, &n.JobsURL, &n.FundingAmount, &n.FundingRound,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
