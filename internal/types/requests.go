package types

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator.Validate caches struct metadata and is safe for concurrent use.
var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// InvalidField returns the JSON name of the first field that failed
// validation, or "" when err carries no field errors.
func InvalidField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}

// MaxQueryLength bounds the free-text search accepted from API clients.
const MaxQueryLength = 256

// SearchRequest is the decoded form of a startup search.
type SearchRequest struct {
	Query        string   `json:"query" validate:"max=256"`
	Locations    []string `json:"locations,omitempty" validate:"max=100"`
	Stages       []string `json:"stages,omitempty" validate:"max=100"`
	CompanySizes []string `json:"company_sizes,omitempty" validate:"max=100"`
}

// Filters returns the FilterState described by the request.
func (r *SearchRequest) Filters() FilterState {
	return NewFilterState(r.Locations, r.Stages, r.CompanySizes)
}

// Validate validates the SearchRequest using the validator.
func (r *SearchRequest) Validate() error {
	return validate.Struct(r)
}

// ToggleRequest asks for the state that results from toggling one value.
type ToggleRequest struct {
	State FilterState `json:"state"`
	Facet string      `json:"facet" validate:"required,oneof=locations stages company_sizes companySizes"`
	Value string      `json:"value" validate:"max=256"`
}

// Validate validates the ToggleRequest using the validator.
func (r *ToggleRequest) Validate() error {
	return validate.Struct(r)
}

// SearchResponse is the API form of one filter evaluation.
type SearchResponse struct {
	Startups []Startup   `json:"startups"`
	Total    int         `json:"total"`
	Matched  int         `json:"matched"`
	Query    string      `json:"query"`
	Filters  FilterState `json:"filters"`
}
