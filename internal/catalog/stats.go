package catalog

import (
	"github.com/jonathan/startup-radar/internal/stage"
)

// Stats summarizes a snapshot for the directory footer.
type Stats struct {
	StartupsTracked     int            `json:"startups_tracked"`
	TotalFundingMillion float64        `json:"total_funding_million"`
	Industries          int            `json:"industries"`
	ByStage             map[string]int `json:"by_stage"`
}

// ComputeStats sums funding amounts found in stage text, counts distinct
// non-empty industries and tallies records per canonical stage.
func ComputeStats(s *Snapshot) Stats {
	stats := Stats{
		StartupsTracked: s.Len(),
		ByStage:         make(map[string]int),
	}

	industries := make(map[string]bool)
	for i := 0; i < s.Len(); i++ {
		e := &s.entries[i]
		if amount, ok := stage.ParseFundingAmount(e.startup.Stage); ok {
			stats.TotalFundingMillion += amount
		}
		if e.startup.Industry != "" {
			industries[e.startup.Industry] = true
		}
		stats.ByStage[e.stage.String()]++
	}
	stats.Industries = len(industries)

	return stats
}
