// Package types provides type definitions for structured data used throughout the startup-radar system.
package types

import "time"

// Startup is one recently funded company as delivered by the record source.
// Only ID and Name are reliably present; every other field may be empty.
type Startup struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Location       string     `json:"location,omitempty"`
	Stage          string     `json:"stage,omitempty"` // Free text, e.g. "$15M Series A"
	Industry       string     `json:"industry,omitempty"`
	WorkType       string     `json:"work_type,omitempty"`
	CompanySize    string     `json:"company_size,omitempty"`
	LogoURL        string     `json:"logo_url,omitempty"`
	HeaderImageURL string     `json:"header_image_url,omitempty"`
	WebsiteURL     string     `json:"website_url,omitempty"`
	JobsURL        string     `json:"jobs_url,omitempty"`
	FundingAmount  string     `json:"funding_amount,omitempty"`
	FundingRound   string     `json:"funding_round,omitempty"`
	Investors      []string   `json:"investors,omitempty"`
	ScrapedAt      *time.Time `json:"scraped_at,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// StartupList is the envelope used by the startups API and record files.
type StartupList struct {
	Total    int       `json:"total"`
	Startups []Startup `json:"startups"`
}
