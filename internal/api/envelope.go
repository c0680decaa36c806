// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/titanx/halo/internal/log"
)

// Meta carries response metadata shared by every endpoint.
type Meta struct {
	Version   string  `json:"version"`
	Timestamp float64 `json:"timestamp"`
	Source    string  `json:"source,omitempty"`
}

// Envelope is the uniform response format of the v1 API. Every endpoint,
// success or failure, answers with this shape.
type Envelope struct {
	OK        bool   `json:"ok"`
	SessionID string `json:"session_id,omitempty"`
	Event     string `json:"event,omitempty"`
	Data      any    `json:"data"`
	Msg       string `json:"msg,omitempty"`
	Meta      Meta   `json:"meta"`
}

func (s *Server) envelope() Envelope {
	return Envelope{
		OK:   true,
		Data: map[string]any{},
		Meta: Meta{
			Version:   s.cfg.Version,
			Timestamp: float64(time.Now().UnixNano()) / float64(time.Second),
		},
	}
}

func (s *Server) writeEnvelope(w http.ResponseWriter, r *http.Request, status int, env Envelope) {
	if env.Data == nil {
		env.Data = map[string]any{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, sessionID, event, msg string) {
	env := s.envelope()
	env.OK = false
	env.SessionID = sessionID
	env.Event = event
	env.Msg = msg
	s.writeEnvelope(w, r, status, env)
}
