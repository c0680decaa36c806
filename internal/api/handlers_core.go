// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/titanx/halo/internal/log"
	"github.com/titanx/halo/internal/session/engine"
)

const (
	eventSessionStarted = "session_started"
	eventSessionEnded   = "session_ended"
)

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if msg := decodeBody(w, r, &req); msg != "" {
		s.writeError(w, r, http.StatusBadRequest, "", "", msg)
		return
	}
	if msg := validateSessionID(req.SessionID); msg != "" {
		s.writeError(w, r, http.StatusBadRequest, "", "", msg)
		return
	}

	result, err := s.engine.Start(r.Context(), engine.StartParams{
		SessionID: req.SessionID,
		UserID:    req.UserID,
		Metadata:  req.Metadata,
	})
	if err != nil {
		status, msg := engineErrorStatus(err)
		s.writeError(w, r, status, req.SessionID, "", msg)
		return
	}

	env := s.envelope()
	env.SessionID = result.SessionID
	env.Event = eventSessionStarted
	env.Data = map[string]any{"user_id": result.UserID}
	s.writeEnvelope(w, r, http.StatusOK, env)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if msg := decodeBody(w, r, &req); msg != "" {
		s.writeError(w, r, http.StatusBadRequest, "", "", msg)
		return
	}
	if msg := req.validate(); msg != "" {
		s.writeError(w, r, http.StatusBadRequest, req.SessionID, req.EventType, msg)
		return
	}

	result, err := s.engine.RecordEvent(r.Context(), engine.EventParams{
		SessionID:  req.SessionID,
		EventType:  req.EventType,
		Timestamp:  deref(req.Timestamp),
		Friction:   deref(req.Friction),
		Hesitation: deref(req.Hesitation),
		Pace:       deref(req.Pace),
	})
	if err != nil {
		status, msg := engineErrorStatus(err)
		s.writeError(w, r, status, req.SessionID, req.EventType, msg)
		return
	}

	if req.Context != nil {
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Debug().
			Str(log.FieldSessionID, req.SessionID).
			Str("page", req.Context.Page).
			Str("element", req.Context.Element).
			Msg("event context received")
	}

	env := s.envelope()
	env.SessionID = result.SessionID
	env.Event = result.EventType
	env.Data = result.Rolling
	s.writeEnvelope(w, r, http.StatusOK, env)
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	var req endRequest
	if msg := decodeBody(w, r, &req); msg != "" {
		s.writeError(w, r, http.StatusBadRequest, "", "", msg)
		return
	}
	if msg := validateSessionID(req.SessionID); msg != "" {
		s.writeError(w, r, http.StatusBadRequest, "", "", msg)
		return
	}

	includeSummary := true
	if req.IncludeSummary != nil {
		includeSummary = *req.IncludeSummary
	}

	result, err := s.engine.End(r.Context(), req.SessionID, includeSummary)
	if err != nil {
		status, msg := engineErrorStatus(err)
		s.writeError(w, r, status, req.SessionID, "", msg)
		return
	}

	env := s.envelope()
	env.SessionID = result.SessionID
	env.Event = eventSessionEnded
	if result.Summary != nil {
		env.Data = result.Summary
	}
	s.writeEnvelope(w, r, http.StatusOK, env)
}
