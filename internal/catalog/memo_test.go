package catalog

import (
	"sync"
	"testing"

	"github.com/jonathan/startup-radar/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemo_FilterRecomputesOnlyOnChange(t *testing.T) {
	memo := NewMemo()
	snap := NewSnapshot(scenarioRecords())
	state := State{Query: "acme"}

	first := memo.Filter(snap, state)
	second := memo.Filter(snap, state)
	assert.Equal(t, ids(first.Startups), ids(second.Startups))

	hits, misses := memo.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	// Same selections in a different order are the same input.
	a := State{Filters: types.NewFilterState([]string{"NYC", "SF"}, nil, nil)}
	b := State{Filters: types.NewFilterState([]string{"SF", "NYC"}, nil, nil)}
	memo.Filter(snap, a)
	memo.Filter(snap, b)
	hits, misses = memo.Stats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 2, misses)
}

func TestMemo_NewSnapshotInvalidates(t *testing.T) {
	memo := NewMemo()
	state := State{}

	before := memo.Filter(NewSnapshot(scenarioRecords()), state)
	after := memo.Filter(NewSnapshot(scenarioRecords()[:1]), state)

	assert.Equal(t, 2, before.Matched)
	assert.Equal(t, 1, after.Matched)

	_, misses := memo.Stats()
	assert.Equal(t, 2, misses)
}

func TestMemo_AvailableFilters(t *testing.T) {
	memo := NewMemo()
	snap := NewSnapshot(scenarioRecords())

	first := memo.AvailableFilters(snap)
	first.Locations[0] = "mutated"

	second := memo.AvailableFilters(snap)
	assert.Equal(t, []string{"NYC", "SF"}, second.Locations, "cached value must not be aliased")

	hits, misses := memo.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	third := memo.AvailableFilters(NewSnapshot(nil))
	assert.Empty(t, third.Locations)
}

func TestMemo_ConcurrentUse(t *testing.T) {
	memo := NewMemo()
	snap := NewSnapshot(mixedRecords())
	queries := []string{"", "fintech", "ai", "beta"}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			state := State{Query: queries[i%len(queries)]}
			got := memo.Filter(snap, state)
			want := Filter(snap, state)
			assert.Equal(t, ids(want.Startups), ids(got.Startups))
		}(i)
	}
	wg.Wait()
}

func TestMemo_SeparatorBytesDoNotCollide(t *testing.T) {
	memo := NewMemo()
	snap := NewSnapshot(scenarioRecords())

	joined := State{Filters: types.NewFilterState([]string{"NYC\x1fSF"}, nil, nil)}
	split := State{Filters: types.NewFilterState([]string{"NYC", "SF"}, nil, nil)}
	require.NotEqual(t, joined.Key(), split.Key())

	assert.Equal(t, 0, memo.Filter(snap, joined).Matched)

	got := memo.Filter(snap, split)
	assert.Equal(t, 2, got.Matched)
	assert.Equal(t, Filter(snap, split).Startups, got.Startups)

	_, misses := memo.Stats()
	assert.Equal(t, 2, misses)
}

func TestMemo_QueryAndFiltersDoNotCollide(t *testing.T) {
	memo := NewMemo()
	snap := NewSnapshot(scenarioRecords())

	a := State{Query: "acme"}
	b := State{Query: "acme\x1d"}
	require.NotEqual(t, a.Key(), b.Key())

	assert.Equal(t, 1, memo.Filter(snap, a).Matched)
	assert.Equal(t, 0, memo.Filter(snap, b).Matched)
}
