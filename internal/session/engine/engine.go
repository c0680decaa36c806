// SPDX-License-Identifier: MIT

// Package engine implements the session lifecycle operations: Start,
// RecordEvent and End, executed as transactions against the session store.
package engine

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/titanx/halo/internal/log"
	"github.com/titanx/halo/internal/metrics"
	"github.com/titanx/halo/internal/session/model"
	"github.com/titanx/halo/internal/session/store"
	"github.com/titanx/halo/internal/telemetry"
)

// Engine enforces lifecycle ordering and maintains rolling metrics. All state
// lives in the injected store; the engine itself is stateless and safe for
// concurrent use.
type Engine struct {
	store  *store.Store
	logger zerolog.Logger
}

// New creates an Engine bound to the given store.
func New(st *store.Store) *Engine {
	return &Engine{
		store:  st,
		logger: log.WithComponent("engine"),
	}
}

// StartParams are the inputs of the Start operation.
type StartParams struct {
	SessionID string
	UserID    string
	Metadata  model.Metadata
}

// StartResult is the payload returned by Start.
type StartResult struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

// EventParams are the inputs of the RecordEvent operation. Absent signals
// are folded as 0.0.
type EventParams struct {
	SessionID  string
	EventType  string
	Timestamp  float64
	Friction   float64
	Hesitation float64
	Pace       float64
}

// EventResult is the payload returned by RecordEvent. Rolling reflects the
// accumulator state after including the current event.
type EventResult struct {
	SessionID string         `json:"session_id"`
	EventType string         `json:"event_type"`
	Rolling   model.Snapshot `json:"rolling"`
}

// EndResult is the payload returned by End. Summary is nil when the caller
// opted out.
type EndResult struct {
	SessionID string          `json:"session_id"`
	Summary   *model.Snapshot `json:"summary,omitempty"`
}

// Start creates a new Active session. It fails with store.ErrDuplicateSession
// if the id is already known in any state, and with a *ValidationError if the
// metadata is structurally malformed.
func (e *Engine) Start(ctx context.Context, p StartParams) (StartResult, error) {
	ctx, span := telemetry.Tracer("halo.engine").Start(ctx, "session.start")
	defer span.End()
	span.SetAttributes(telemetry.SessionAttributes(p.SessionID)...)

	if err := p.Metadata.Validate(); err != nil {
		metrics.IncEngineFailure("start", "validation")
		return StartResult{}, &ValidationError{Field: "metadata", Reason: err.Error()}
	}

	rec, err := e.store.Create(p.SessionID, p.UserID, p.Metadata)
	if err != nil {
		metrics.IncEngineFailure("start", failureReason(err))
		return StartResult{}, err
	}

	metrics.IncSessionStarted()
	metrics.SetActiveSessions(e.store.Len())

	logger := log.WithContext(ctx, e.logger)
	logger.Info().
		Str(log.FieldSessionID, rec.SessionID).
		Str(log.FieldEvent, "session.started").
		Msg("session started")

	return StartResult{SessionID: rec.SessionID, UserID: rec.UserID}, nil
}

// RecordEvent folds one observation into the session's accumulator. Events
// against an Ended session are rejected with ErrSessionClosed, never silently
// dropped or queued. Non-finite signal values are rejected with a
// *ValidationError before any state is touched.
func (e *Engine) RecordEvent(ctx context.Context, p EventParams) (EventResult, error) {
	ctx, span := telemetry.Tracer("halo.engine").Start(ctx, "session.event")
	defer span.End()
	span.SetAttributes(telemetry.SessionAttributes(p.SessionID)...)

	if err := validateSignals(p); err != nil {
		metrics.IncEngineFailure("event", "validation")
		return EventResult{}, err
	}

	var rolling model.Snapshot
	err := e.store.Update(p.SessionID, func(rec *model.Record) error {
		if rec.State.IsTerminal() {
			return ErrSessionClosed
		}
		rec.Accumulator.Fold(p.Friction, p.Hesitation, p.Pace)
		rolling = rec.Accumulator.Snapshot()
		return nil
	})
	if err != nil {
		metrics.IncEngineFailure("event", failureReason(err))
		return EventResult{}, err
	}

	metrics.ObserveEvent(p.Friction, p.Hesitation, p.Pace)

	logger := log.WithContext(ctx, e.logger)
	logger.Debug().
		Str(log.FieldSessionID, p.SessionID).
		Str(log.FieldEvent, "session.event").
		Int64(log.FieldEventsCount, rolling.EventsCount).
		Msg("event recorded")

	return EventResult{SessionID: p.SessionID, EventType: p.EventType, Rolling: rolling}, nil
}

// End transitions the session to Ended and stamps its end time. End is
// strict: a second call fails with ErrSessionAlreadyEnded rather than being
// silently accepted.
func (e *Engine) End(ctx context.Context, sessionID string, includeSummary bool) (EndResult, error) {
	ctx, span := telemetry.Tracer("halo.engine").Start(ctx, "session.end")
	defer span.End()
	span.SetAttributes(telemetry.SessionAttributes(sessionID)...)

	var summary *model.Snapshot
	err := e.store.Update(sessionID, func(rec *model.Record) error {
		if rec.State.IsTerminal() {
			return ErrSessionAlreadyEnded
		}
		rec.State = model.StateEnded
		rec.EndedAt = time.Now().UTC()
		if includeSummary {
			snap := rec.Accumulator.Snapshot()
			summary = &snap
		}
		return nil
	})
	if err != nil {
		metrics.IncEngineFailure("end", failureReason(err))
		return EndResult{}, err
	}

	metrics.IncSessionEnded()

	logger := log.WithContext(ctx, e.logger)
	logger.Info().
		Str(log.FieldSessionID, sessionID).
		Str(log.FieldEvent, "session.ended").
		Str(log.FieldOldState, string(model.StateActive)).
		Str(log.FieldNewState, string(model.StateEnded)).
		Msg("session ended")

	return EndResult{SessionID: sessionID, Summary: summary}, nil
}

// Store exposes the underlying store for status reporting and sweeping.
func (e *Engine) Store() *store.Store {
	return e.store
}

func validateSignals(p EventParams) error {
	for _, sig := range []struct {
		name  string
		value float64
	}{
		{"timestamp", p.Timestamp},
		{"friction", p.Friction},
		{"hesitation", p.Hesitation},
		{"pace", p.Pace},
	} {
		if math.IsNaN(sig.value) || math.IsInf(sig.value, 0) {
			return &ValidationError{Field: sig.name, Reason: "must be a finite number"}
		}
	}
	return nil
}

func failureReason(err error) string {
	switch {
	case isErr(err, store.ErrDuplicateSession):
		return "duplicate"
	case isErr(err, store.ErrSessionNotFound):
		return "not_found"
	case isErr(err, ErrSessionClosed):
		return "closed"
	case isErr(err, ErrSessionAlreadyEnded):
		return "already_ended"
	default:
		return "internal"
	}
}
