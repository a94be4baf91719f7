package catalog

import (
	"github.com/jonathan/startup-radar/internal/types"
)

// State is everything besides the record list that determines a result: the
// free-text query and the facet selections. It is a value; every operation
// returns a new State.
type State struct {
	Query   string            `json:"query"`
	Filters types.FilterState `json:"filters"`
}

// SetQuery replaces the query.
func (s State) SetQuery(text string) State {
	s.Query = text
	return s
}

// Toggle flips one facet value.
func (s State) Toggle(facet types.Facet, value string) State {
	s.Filters = s.Filters.Toggle(facet, value)
	return s
}

// ClearAll resets the query and every facet in a single transition.
func (s State) ClearAll() State {
	return State{}
}

// ActiveFilterCount counts facet selections; the query is not included.
func (s State) ActiveFilterCount() int {
	return s.Filters.ActiveCount()
}

// IsZero reports whether the state filters nothing.
func (s State) IsZero() bool {
	return s.Query == "" && s.Filters.IsEmpty()
}

// Key identifies the state for caching: equal keys produce equal results on
// the same snapshot.
func (s State) Key() string {
	return s.Filters.KeyWithQuery(s.Query)
}
