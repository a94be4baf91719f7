package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/startup-radar/internal/catalog"
	"github.com/jonathan/startup-radar/internal/types"
	"go.uber.org/zap"
)

// searchParams maps SearchRequest JSON fields to their query parameters.
var searchParams = map[string]string{
	"query":         "q",
	"locations":     "location",
	"stages":        "stage",
	"company_sizes": "company_size",
}

// searchRequestFromQuery reads q and the repeatable facet parameters.
func searchRequestFromQuery(r *http.Request) types.SearchRequest {
	q := r.URL.Query()
	return types.SearchRequest{
		Query:        q.Get("q"),
		Locations:    nonEmpty(q["location"]),
		Stages:       nonEmpty(q["stage"]),
		CompanySizes: nonEmpty(q["company_size"]),
	}
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// handleSearchStartups filters the current snapshot
func (s *Server) handleSearchStartups(w http.ResponseWriter, r *http.Request) {
	req := searchRequestFromQuery(r)
	if err := req.Validate(); err != nil {
		field := types.InvalidField(err)
		if param, ok := searchParams[field]; ok {
			field = param
		}
		s.errorFrom(w, &ErrValidation{Field: field, Message: err.Error()})
		return
	}

	state := catalog.State{Query: req.Query, Filters: req.Filters()}
	result := s.memo.Filter(s.Snapshot(), state)
	hits, misses := s.memo.Stats()
	s.logger.Debug("search",
		zap.Int("matched", result.Matched),
		zap.Int("total", result.Total),
		zap.Int("memo_hits", hits),
		zap.Int("memo_misses", misses),
	)

	startups := result.Startups
	if startups == nil {
		startups = []types.Startup{}
	}
	s.jsonResponse(w, http.StatusOK, types.SearchResponse{
		Startups: startups,
		Total:    result.Total,
		Matched:  result.Matched,
		Query:    state.Query,
		Filters:  state.Filters,
	})
}

// handleAvailableFilters returns the selectable values per facet
func (s *Server) handleAvailableFilters(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.memo.AvailableFilters(s.Snapshot()))
}

// handleStats returns summary counts for the current snapshot
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, catalog.ComputeStats(s.Snapshot()))
}

// handleGetStartup retrieves a startup by ID
func (s *Server) handleGetStartup(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid startup ID")
		return
	}

	startup, ok := s.Snapshot().Find(id)
	if !ok {
		s.errorFrom(w, &ErrStartupNotFound{ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, startup)
}

// handleReload rebuilds the snapshot from the record source
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Reload(r.Context())
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	s.mu.RLock()
	loadedAt := s.loadedAt
	s.mu.RUnlock()

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"snapshot_id": snap.ID().String(),
		"total":       snap.Len(),
		"loaded_at":   loadedAt,
	})
}
