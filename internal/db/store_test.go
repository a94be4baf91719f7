package db

import (
	"testing"

	"github.com/jonathan/startup-radar/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestColumnList(t *testing.T) {
	cols := columnList()
	assert.Contains(t, cols, "id, name, description")
	assert.Contains(t, cols, "investors, scraped_at, created_at, updated_at")
}

func TestOptionalTextMatchesTargets(t *testing.T) {
	s := types.Startup{Description: "d", Location: "NYC", FundingRound: "Seed"}

	values := optionalText(&s)
	var text nullableText
	// id + name + optional text + investors + three timestamps
	assert.Len(t, startupColumns, 2+len(values)+4)
	assert.Len(t, text.targets(), len(values))

	assert.Equal(t, "d", *values[0].(*string))
	assert.Nil(t, values[2].(*string), "empty stage should be NULL")
}

func TestNullableTextApply(t *testing.T) {
	loc := "Remote"
	text := nullableText{Location: &loc}

	var s types.Startup
	text.apply(&s)

	assert.Equal(t, "Remote", s.Location)
	assert.Equal(t, "", s.Stage)
}
