package catalog

import (
	"sort"

	"github.com/jonathan/startup-radar/internal/stage"
	"github.com/jonathan/startup-radar/internal/types"
)

// Aggregate derives the selectable options per facet from the snapshot.
// Records missing a field are skipped for that facet only. The lists are never
// nil, so an empty snapshot encodes as three empty arrays.
func Aggregate(s *Snapshot) types.AvailableFilters {
	locations := make(map[string]bool)
	stages := make(map[stage.Stage]bool)
	sizes := make(map[string]bool)

	for i := 0; i < s.Len(); i++ {
		e := &s.entries[i]
		if e.startup.Location != "" {
			locations[e.startup.Location] = true
		}
		if e.stage.IsClassified() {
			stages[e.stage] = true
		}
		if e.startup.CompanySize != "" {
			sizes[e.startup.CompanySize] = true
		}
	}

	stageLabels := make([]string, 0, len(stages))
	for st := range stages {
		stageLabels = append(stageLabels, st.String())
	}
	stage.SortLabels(stageLabels)

	return types.AvailableFilters{
		Locations:    sortedKeys(locations),
		Stages:       stageLabels,
		CompanySizes: sortedKeys(sizes),
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
