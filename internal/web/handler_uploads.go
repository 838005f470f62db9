package web

import (
	"io"
	"net/http"
)

// handleGetUpload serves a stored photo by its generated name. Any open
// failure, missing files and traversal attempts included, reads as absent.
func (s *Server) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")

	rc, mimeType, err := s.photoStore.Open(r.Context(), name)
	if err != nil {
		s.logger.Debug("photo open failed", "file", name, "error", err)
		writeError(w, http.StatusNotFound, "Photo not found")
		return
	}
	defer closeWithLog(rc, "photo file", s.logger)

	w.Header().Set("Content-Type", mimeType)
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Error("failed to stream photo", "file", name, "error", err)
	}
}
