package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/startup-radar/internal/types"
)

// maxBodyBytes bounds filter-state request bodies.
const maxBodyBytes = 64 << 10

// filterStateResponse is returned by every filter-state transition.
type filterStateResponse struct {
	State       types.FilterState `json:"state"`
	ActiveCount int               `json:"active_count"`
}

// handleToggleFilter returns the state with one facet value flipped
func (s *Server) handleToggleFilter(w http.ResponseWriter, r *http.Request) {
	var req types.ToggleRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFrom(w, &ErrValidation{Field: types.InvalidField(err), Message: err.Error()})
		return
	}

	facet, ok := types.ParseFacet(req.Facet)
	if !ok {
		s.errorFrom(w, &ErrValidation{Field: "facet", Message: "unknown facet " + req.Facet})
		return
	}

	next := req.State.Toggle(facet, req.Value)
	s.jsonResponse(w, http.StatusOK, filterStateResponse{State: next, ActiveCount: next.ActiveCount()})
}

// handleClearFilters returns the empty state
func (s *Server) handleClearFilters(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, filterStateResponse{State: types.FilterState{}})
}
