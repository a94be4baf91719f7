package catalog

import (
	"testing"

	"github.com/jonathan/startup-radar/internal/stage"
	"github.com/stretchr/testify/assert"
)

func TestNewSnapshot_DerivesStageOnce(t *testing.T) {
	records := scenarioRecords()
	snap := NewSnapshot(records)

	assert.Equal(t, stage.SeriesA, snap.StageOf(0))
	assert.Equal(t, stage.Seed, snap.StageOf(1))

	// The snapshot owns a copy; later edits to the caller's slice are invisible.
	records[0].Name = "Changed"
	assert.Equal(t, "Acme", snap.Records()[0].Name)
}

func TestNewSnapshot_UniqueIdentity(t *testing.T) {
	a := NewSnapshot(scenarioRecords())
	b := NewSnapshot(scenarioRecords())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSnapshot_Find(t *testing.T) {
	snap := NewSnapshot(scenarioRecords())

	rec, ok := snap.Find(2)
	assert.True(t, ok)
	assert.Equal(t, "Beta", rec.Name)

	_, ok = snap.Find(99)
	assert.False(t, ok)
}
