package types

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/startup-radar/internal/stage"
)

// Facet names one independent filter dimension.
type Facet string

// Facet constants
const (
	FacetLocations    Facet = "locations"
	FacetStages       Facet = "stages"
	FacetCompanySizes Facet = "company_sizes"
)

// Facets lists every facet in display order.
func Facets() []Facet {
	return []Facet{FacetLocations, FacetStages, FacetCompanySizes}
}

// ParseFacet resolves a facet name. camelCase "companySizes" is accepted for
// clients that send camelCase field names.
func ParseFacet(name string) (Facet, bool) {
	switch strings.TrimSpace(name) {
	case string(FacetLocations):
		return FacetLocations, true
	case string(FacetStages):
		return FacetStages, true
	case string(FacetCompanySizes), "companySizes":
		return FacetCompanySizes, true
	default:
		return "", false
	}
}

// FilterState is the set of selected values per facet. It is an immutable
// value: every change returns a new FilterState and accessors return copies,
// so a FilterState can be shared freely once built.
//
// Stage selections are stored as canonical labels. A stage value that is not
// a canonical label is kept verbatim; it can never match a record.
type FilterState struct {
	locations    []string
	stages       []string
	companySizes []string
}

// NewFilterState builds a FilterState from raw selections. Duplicates are
// dropped and stage labels are canonicalized.
func NewFilterState(locations, stages, companySizes []string) FilterState {
	var f FilterState
	for _, v := range locations {
		f.locations = addUnique(f.locations, v)
	}
	for _, v := range stages {
		f.stages = addUnique(f.stages, canonicalStageValue(v))
	}
	for _, v := range companySizes {
		f.companySizes = addUnique(f.companySizes, v)
	}
	return f
}

// Selected returns a copy of the selections for a facet, in selection order.
func (f FilterState) Selected(facet Facet) []string {
	src := f.values(facet)
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Locations returns the selected locations.
func (f FilterState) Locations() []string { return f.Selected(FacetLocations) }

// StageLabels returns the selected stage labels.
func (f FilterState) StageLabels() []string { return f.Selected(FacetStages) }

// CompanySizes returns the selected company sizes.
func (f FilterState) CompanySizes() []string { return f.Selected(FacetCompanySizes) }

// Has reports whether value is selected for facet.
func (f FilterState) Has(facet Facet, value string) bool {
	if facet == FacetStages {
		value = canonicalStageValue(value)
	}
	return contains(f.values(facet), value)
}

// Toggle removes value from facet if it is selected and adds it otherwise.
// The receiver is left untouched. Unknown facets yield an identical state.
func (f FilterState) Toggle(facet Facet, value string) FilterState {
	if facet == FacetStages {
		value = canonicalStageValue(value)
	}

	var updated []string
	current := f.values(facet)
	if contains(current, value) {
		updated = make([]string, 0, len(current)-1)
		for _, v := range current {
			if v != value {
				updated = append(updated, v)
			}
		}
	} else {
		updated = make([]string, len(current), len(current)+1)
		copy(updated, current)
		updated = append(updated, value)
	}

	next := f
	switch facet {
	case FacetLocations:
		next.locations = updated
	case FacetStages:
		next.stages = updated
	case FacetCompanySizes:
		next.companySizes = updated
	}
	return next
}

// ActiveCount returns the number of selected values across all facets.
func (f FilterState) ActiveCount() int {
	return len(f.locations) + len(f.stages) + len(f.companySizes)
}

// IsEmpty reports whether no facet has a selection.
func (f FilterState) IsEmpty() bool {
	return f.ActiveCount() == 0
}

// Key returns a canonical string for the selection sets, independent of
// selection order. Every value is length-prefixed, so distinct selections
// never share a key whatever bytes the values contain.
func (f FilterState) Key() string {
	var sb strings.Builder
	for _, facet := range Facets() {
		vals := f.Selected(facet)
		sort.Strings(vals)
		sb.WriteString(string(facet))
		sb.WriteString(strconv.Itoa(len(vals)))
		sb.WriteByte('[')
		for _, v := range vals {
			writeLengthPrefixed(&sb, v)
		}
		sb.WriteByte(']')
	}
	return sb.String()
}

// KeyWithQuery extends Key with a free-text query.
func (f FilterState) KeyWithQuery(query string) string {
	var sb strings.Builder
	writeLengthPrefixed(&sb, query)
	sb.WriteString(f.Key())
	return sb.String()
}

func writeLengthPrefixed(sb *strings.Builder, v string) {
	sb.WriteString(strconv.Itoa(len(v)))
	sb.WriteByte(':')
	sb.WriteString(v)
}

func (f FilterState) values(facet Facet) []string {
	switch facet {
	case FacetLocations:
		return f.locations
	case FacetStages:
		return f.stages
	case FacetCompanySizes:
		return f.companySizes
	default:
		return nil
	}
}

type filterStateJSON struct {
	Locations    []string `json:"locations"`
	Stages       []string `json:"stages"`
	CompanySizes []string `json:"company_sizes"`
}

// MarshalJSON encodes the three selection lists; empty facets encode as [].
func (f FilterState) MarshalJSON() ([]byte, error) {
	return json.Marshal(filterStateJSON{
		Locations:    f.Locations(),
		Stages:       f.StageLabels(),
		CompanySizes: f.CompanySizes(),
	})
}

// UnmarshalJSON decodes selection lists through NewFilterState.
func (f *FilterState) UnmarshalJSON(data []byte) error {
	var raw filterStateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = NewFilterState(raw.Locations, raw.Stages, raw.CompanySizes)
	return nil
}

// AvailableFilters is the selectable option set per facet, derived from the
// current record list.
type AvailableFilters struct {
	Locations    []string `json:"locations"`
	Stages       []string `json:"stages"`
	CompanySizes []string `json:"company_sizes"`
}

func canonicalStageValue(v string) string {
	if s, ok := stage.FromLabel(v); ok {
		return s.String()
	}
	return v
}

func addUnique(list []string, v string) []string {
	if contains(list, v) {
		return list
	}
	return append(list, v)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
