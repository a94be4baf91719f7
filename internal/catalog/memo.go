package catalog

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/startup-radar/internal/types"
)

// Memo caches the last derived values keyed by the identity of their inputs:
// the snapshot ID for available filters, and (snapshot ID, state key) for
// filter results. A change in any key is an "inputs changed" event and the
// value is recomputed in full. Safe for concurrent use.
type Memo struct {
	mu sync.Mutex

	filtersFor uuid.UUID
	filters    types.AvailableFilters

	resultFor  uuid.UUID
	resultKey  string
	result     Result
	haveResult bool

	hits   int
	misses int
}

// NewMemo creates an empty cache.
func NewMemo() *Memo {
	return &Memo{}
}

// AvailableFilters returns Aggregate(s), recomputing only when s is a
// different snapshot from the previous call.
func (m *Memo) AvailableFilters(s *Snapshot) types.AvailableFilters {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.filtersFor == s.ID() && m.filtersFor != uuid.Nil {
		m.hits++
		return copyFilters(m.filters)
	}
	m.misses++
	m.filtersFor = s.ID()
	m.filters = Aggregate(s)
	return copyFilters(m.filters)
}

// Filter returns Filter(s, state), recomputing only when the snapshot or the
// state changed since the previous call.
func (m *Memo) Filter(s *Snapshot, state State) Result {
	key := state.Key()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.haveResult && m.resultFor == s.ID() && m.resultKey == key {
		m.hits++
		return copyResult(m.result)
	}
	m.misses++
	m.resultFor = s.ID()
	m.resultKey = key
	m.result = Filter(s, state)
	m.haveResult = true
	return copyResult(m.result)
}

// Stats reports cache hits and misses since creation.
func (m *Memo) Stats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}

func copyResult(r Result) Result {
	out := r
	out.Startups = make([]types.Startup, len(r.Startups))
	copy(out.Startups, r.Startups)
	return out
}

func copyFilters(f types.AvailableFilters) types.AvailableFilters {
	return types.AvailableFilters{
		Locations:    append([]string{}, f.Locations...),
		Stages:       append([]string{}, f.Stages...),
		CompanySizes: append([]string{}, f.CompanySizes...),
	}
}
