package web

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/stagecrew/propshelf/internal/photostore"
	"github.com/stagecrew/propshelf/internal/service"
)

type Server struct {
	props      *service.PropService
	locations  *service.LocationService
	photoStore photostore.PhotoStore
	authHeader string
	mux        *http.ServeMux
	logger     *slog.Logger
}

// NewServer wires the JSON API. authHeader names the trusted identity header
// set by the fronting auth gate; empty disables the check.
func NewServer(props *service.PropService, locations *service.LocationService, ps photostore.PhotoStore, authHeader string, logger *slog.Logger) *Server {
	s := &Server{
		props:      props,
		locations:  locations,
		photoStore: ps,
		authHeader: authHeader,
		mux:        http.NewServeMux(),
		logger:     logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/locations", s.handleListLocations)
	s.mux.HandleFunc("POST /api/locations", s.handleCreateLocation)
	s.mux.HandleFunc("POST /api/add_prop", s.handleCreateProp)
	s.mux.HandleFunc("GET /api/props", s.handleListProps)
	s.mux.HandleFunc("GET /api/prop/{id}", s.handleGetProp)
	s.mux.HandleFunc("PUT /api/prop/{id}", s.handleUpdateProp)
	s.mux.HandleFunc("DELETE /api/prop/{id}", s.handleDeleteProp)
	s.mux.HandleFunc("GET /uploads/{filename}", s.handleGetUpload)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// identityGate rejects requests that lack the trusted identity header the
// fronting auth proxy sets for authenticated users. The health endpoint
// stays open for probes. An empty header name disables the gate.
func identityGate(header string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if header != "" && r.URL.Path != "/healthz" && r.Header.Get(header) == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(identityGate(s.authHeader, s.mux))).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

// parseID extracts the {id} path variable and returns it as int64.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func closeWithLog(c io.Closer, what string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close "+what, "error", err)
	}
}
