// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"time"
)

var processStart = time.Now()

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	env := s.envelope()
	env.Data = map[string]any{
		"service": s.cfg.LogService,
		"version": s.cfg.Version,
		"status":  "running",
	}
	s.writeEnvelope(w, r, http.StatusOK, env)
}

// handleHealth is the lightweight liveness probe. Heavier checks live on
// /healthz and /readyz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	env := s.envelope()
	env.Msg = "ok"
	s.writeEnvelope(w, r, http.StatusOK, env)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	env := s.envelope()
	env.Data = map[string]any{
		"service":        s.cfg.LogService,
		"version":        s.cfg.Version,
		"uptime_seconds": int64(time.Since(processStart).Seconds()),
		"sessions_held":  s.engine.Store().Len(),
	}
	s.writeEnvelope(w, r, http.StatusOK, env)
}
