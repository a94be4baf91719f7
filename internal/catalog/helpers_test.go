package catalog

import (
	"github.com/jonathan/startup-radar/internal/types"
)

// scenarioRecords is the two-company fixture used across the engine tests.
func scenarioRecords() []types.Startup {
	return []types.Startup{
		{ID: 1, Name: "Acme", Description: "fintech", Stage: "$15M Series A", Location: "NYC", CompanySize: "11-50"},
		{ID: 2, Name: "Beta", Description: "devtools", Stage: "Seed $1M", Location: "SF", CompanySize: "1-10"},
	}
}

// mixedRecords covers missing fields, unclassified stages and duplicates.
func mixedRecords() []types.Startup {
	return []types.Startup{
		{ID: 1, Name: "Acme", Description: "Payments for fintech teams", Stage: "$15M Series A", Location: "NYC", CompanySize: "11-50", Industry: "Fintech"},
		{ID: 2, Name: "Beta", Description: "devtools", Stage: "Seed $1M", Location: "SF", CompanySize: "1-10", Industry: "Developer Tools"},
		{ID: 3, Name: "Cobalt", Stage: "Growth Equity", Location: "NYC", Industry: "Climate"},
		{ID: 4, Name: "Delta", Description: "AI copilots", Stage: "$40M series c", CompanySize: "51-200"},
		{ID: 5, Name: "Echo", Stage: "", Location: "Austin", CompanySize: "11-50", Industry: "Health"},
		{ID: 6, Name: "Foxtrot", Description: "Fintech infra", Stage: "$500K Pre-Seed", Location: "SF", CompanySize: "1-10"},
		{ID: 7, Name: "Gamma"},
	}
}

func ids(records []types.Startup) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
