// Package catalog is the search, filter and aggregation engine over an
// in-memory snapshot of startup records.
//
// Everything here is a pure function of its inputs: a Snapshot, a query and a
// FilterState. Nothing returns an error; empty fields and unknown selections
// are ordinary inputs.
package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/startup-radar/internal/stage"
	"github.com/jonathan/startup-radar/internal/types"
)

// Snapshot is an immutable record list with per-record derived fields. The
// canonical stage is parsed once here and reused by aggregation, filtering and
// stats so those can never disagree.
type Snapshot struct {
	id      uuid.UUID
	entries []entry
}

type entry struct {
	startup types.Startup
	stage   stage.Stage

	// lowercased search fields
	name        string
	description string
	industry    string
}

// NewSnapshot copies records into a new snapshot with a fresh identity.
func NewSnapshot(records []types.Startup) *Snapshot {
	entries := make([]entry, len(records))
	for i, rec := range records {
		entries[i] = entry{
			startup:     rec,
			stage:       stage.Parse(rec.Stage),
			name:        strings.ToLower(rec.Name),
			description: strings.ToLower(rec.Description),
			industry:    strings.ToLower(rec.Industry),
		}
	}
	return &Snapshot{id: uuid.New(), entries: entries}
}

// ID identifies this snapshot. Two snapshots never share an ID, even when built
// from equal record lists.
func (s *Snapshot) ID() uuid.UUID {
	return s.id
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Records returns the records in their original order.
func (s *Snapshot) Records() []types.Startup {
	out := make([]types.Startup, s.Len())
	for i := range out {
		out[i] = s.entries[i].startup
	}
	return out
}

// StageOf returns the derived canonical stage of the i-th record.
func (s *Snapshot) StageOf(i int) stage.Stage {
	return s.entries[i].stage
}

// Find returns the record with the given ID.
func (s *Snapshot) Find(id int64) (types.Startup, bool) {
	for i := 0; i < s.Len(); i++ {
		if s.entries[i].startup.ID == id {
			return s.entries[i].startup, true
		}
	}
	return types.Startup{}, false
}
