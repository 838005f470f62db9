package web

import (
	"encoding/json"
	"net/http"

	"github.com/stagecrew/propshelf/internal/domain"
)

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.locations.ListLocations(r.Context())
	if err != nil {
		s.writeDomainError(w, err, "Location not found")
		return
	}
	if locations == nil {
		locations = []*domain.Location{}
	}

	writeJSON(w, http.StatusOK, locations)
}

func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w, err)
		return
	}

	loc, err := s.locations.CreateLocation(r.Context(), req.Name)
	if err != nil {
		s.writeDomainError(w, err, "Location not found")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      loc.ID,
		"name":    loc.Name,
		"message": "Location added successfully!",
	})
}
