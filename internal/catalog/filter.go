package catalog

import (
	"strings"

	"github.com/jonathan/startup-radar/internal/types"
)

// Result is one evaluation of the predicate engine.
type Result struct {
	Startups []types.Startup `json:"startups"`
	Total    int             `json:"total"`   // records in the snapshot
	Matched  int             `json:"matched"` // len(Startups)
}

// matcher is a FilterState compiled to set lookups for one evaluation.
type matcher struct {
	query        string
	locations    map[string]bool
	stages       map[string]bool
	companySizes map[string]bool
}

func compile(query string, filters types.FilterState) matcher {
	return matcher{
		query:        strings.ToLower(query),
		locations:    toSet(filters.Locations()),
		stages:       toSet(filters.StageLabels()),
		companySizes: toSet(filters.CompanySizes()),
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Filter returns the records matching state, in snapshot order.
//
// A record matches when the query is found in its name, description or
// industry and, for every facet with a selection, its value is one of the
// selected values. Facets without a selection match everything.
func Filter(s *Snapshot, state State) Result {
	m := compile(state.Query, state.Filters)

	matched := make([]types.Startup, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		if m.matches(&s.entries[i]) {
			matched = append(matched, s.entries[i].startup)
		}
	}

	return Result{
		Startups: matched,
		Total:    s.Len(),
		Matched:  len(matched),
	}
}

// Apply filters a plain record list. It builds a throwaway snapshot; callers
// evaluating repeatedly should keep a Snapshot instead.
func Apply(records []types.Startup, query string, filters types.FilterState) []types.Startup {
	return Filter(NewSnapshot(records), State{Query: query, Filters: filters}).Startups
}

func (m *matcher) matches(e *entry) bool {
	return m.matchesSearch(e) &&
		m.matchesLocation(e) &&
		m.matchesStage(e) &&
		m.matchesCompanySize(e)
}

func (m *matcher) matchesSearch(e *entry) bool {
	if m.query == "" {
		return true
	}
	// Empty fields are skipped rather than matched: "" contains no non-empty query.
	return (e.name != "" && strings.Contains(e.name, m.query)) ||
		(e.description != "" && strings.Contains(e.description, m.query)) ||
		(e.industry != "" && strings.Contains(e.industry, m.query))
}

func (m *matcher) matchesLocation(e *entry) bool {
	if len(m.locations) == 0 {
		return true
	}
	return e.startup.Location != "" && m.locations[e.startup.Location]
}

// matchesStage excludes Unclassified records as soon as any stage is selected.
func (m *matcher) matchesStage(e *entry) bool {
	if len(m.stages) == 0 {
		return true
	}
	return e.stage.IsClassified() && m.stages[e.stage.String()]
}

func (m *matcher) matchesCompanySize(e *entry) bool {
	if len(m.companySizes) == 0 {
		return true
	}
	return e.startup.CompanySize != "" && m.companySizes[e.startup.CompanySize]
}
