// SPDX-License-Identifier: MIT

// Package model defines the session domain types: lifecycle state, the
// session record and its rolling-metrics accumulator.
package model

import "time"

// State is the lifecycle state of a session.
type State string

const (
	// StateActive is the initial state, entered by Start.
	StateActive State = "active"
	// StateEnded is the terminal state, entered by End. No transition
	// leaves it.
	StateEnded State = "ended"
)

// IsTerminal returns true if the state is a final state.
func (s State) IsTerminal() bool {
	return s == StateEnded
}

// Record is a single session. The store owns all records; identity fields and
// metadata are immutable after creation, and only the engine mutates the
// accumulator and state.
type Record struct {
	SessionID string
	UserID    string
	Metadata  Metadata
	State     State

	Accumulator Accumulator

	CreatedAt time.Time
	EndedAt   time.Time // zero while Active
}

// NewRecord creates an Active record with an empty accumulator.
func NewRecord(sessionID, userID string, metadata Metadata, now time.Time) *Record {
	return &Record{
		SessionID: sessionID,
		UserID:    userID,
		Metadata:  metadata,
		State:     StateActive,
		CreatedAt: now,
	}
}
