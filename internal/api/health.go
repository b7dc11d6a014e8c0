package api

import (
	"net/http"

	"galeana/internal/service"
)

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := s.svc.Health(r.Context())
	status := http.StatusOK
	if h.Status != service.StatusOK {
		status = http.StatusServiceUnavailable
		s.logger.Warnw("health degraded", "supabase", h.Supabase, "database", h.Database)
	}
	writeJSON(w, status, h, s.logger)
}

func (s *server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSONError(w, http.StatusNotFound, "NOT_FOUND", "resource not found", s.logger)
}
