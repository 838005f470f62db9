package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stagecrew/propshelf/internal/domain"
	"github.com/stagecrew/propshelf/internal/service"
)

const maxBodySize = 50 * 1024 * 1024 // photos arrive base64-embedded in the JSON body

const propNotFoundMsg = "Prop not found"

// createPropResponse flattens the created record into the response body
// alongside the outcome of each submitted photo.
type createPropResponse struct {
	*domain.Prop
	Message       string                 `json:"message"`
	SkippedPhotos []service.SkippedPhoto `json:"skippedPhotos"`
}

func (s *Server) handleCreateProp(w http.ResponseWriter, r *http.Request) {
	var sub service.PropSubmission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&sub); err != nil {
		writeBodyError(w, err)
		return
	}

	res, err := s.props.CreateProp(r.Context(), &sub)
	if err != nil {
		s.writeDomainError(w, err, propNotFoundMsg)
		return
	}

	writeJSON(w, http.StatusCreated, createPropResponse{
		Prop:          res.Prop,
		Message:       "Prop added successfully!",
		SkippedPhotos: res.Skipped,
	})
}

func (s *Server) handleListProps(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	props, err := s.props.ListProps(r.Context(), search)
	if err != nil {
		s.writeDomainError(w, err, propNotFoundMsg)
		return
	}
	if props == nil {
		props = []*domain.Prop{}
	}

	writeJSON(w, http.StatusOK, props)
}

func (s *Server) handleGetProp(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid prop id")
		return
	}

	prop, err := s.props.GetProp(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, propNotFoundMsg)
		return
	}

	writeJSON(w, http.StatusOK, prop)
}

func (s *Server) handleUpdateProp(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid prop id")
		return
	}

	var upd service.PropUpdate
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&upd); err != nil {
		writeBodyError(w, err)
		return
	}

	if _, err := s.props.UpdateProp(r.Context(), id, &upd); err != nil {
		s.writeDomainError(w, err, propNotFoundMsg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"message": "Prop updated successfully!",
	})
}

func (s *Server) handleDeleteProp(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid prop id")
		return
	}

	if err := s.props.DeleteProp(r.Context(), id); err != nil {
		s.writeDomainError(w, err, propNotFoundMsg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":      id,
		"message": "Prop deleted successfully!",
	})
}
