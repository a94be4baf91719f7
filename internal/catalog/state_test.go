package catalog

import (
	"testing"

	"github.com/jonathan/startup-radar/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestState_Operations(t *testing.T) {
	var s State
	assert.True(t, s.IsZero())

	s1 := s.SetQuery("fin")
	assert.Equal(t, "fin", s1.Query)
	assert.Equal(t, "", s.Query, "SetQuery must not modify the receiver")

	s2 := s1.Toggle(types.FacetStages, "Seed").Toggle(types.FacetLocations, "NYC")
	assert.Equal(t, 2, s2.ActiveFilterCount())
	assert.Equal(t, 0, s1.ActiveFilterCount())

	s3 := s2.SetQuery("tech")
	assert.Equal(t, s2.Filters.Key(), s3.Filters.Key(), "SetQuery keeps selections")

	cleared := s3.ClearAll()
	assert.True(t, cleared.IsZero())
	assert.Equal(t, State{}.Key(), cleared.Key())
	assert.False(t, s3.IsZero())
}

func TestState_KeyDistinguishesQueryFromFilters(t *testing.T) {
	a := State{Query: "NYC"}
	b := State{}.Toggle(types.FacetLocations, "NYC")
	assert.NotEqual(t, a.Key(), b.Key())
}
