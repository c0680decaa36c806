// SPDX-License-Identifier: MIT

// Package store provides the in-memory session registry. It is the single
// source of truth for session records and owns all synchronization.
package store

import (
	"sync"
	"time"

	"github.com/titanx/halo/internal/session/model"
)

// Store maps session IDs to records. The registry map is guarded by an
// RWMutex; each record additionally carries its own mutex so that operations
// on one session serialize against each other without blocking operations on
// unrelated sessions.
//
// A Store must be constructed once at process start with NewStore and
// injected into its consumers; it is never implicitly reset.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

type entry struct {
	mu  sync.Mutex
	rec *model.Record
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

// Create atomically inserts a new Active record for id. It fails with
// ErrDuplicateSession if the id is already present in any state; session
// identifiers are never reused.
func (s *Store) Create(id, userID string, metadata model.Metadata) (*model.Record, error) {
	rec := model.NewRecord(id, userID, metadata, time.Now().UTC())

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[id]; exists {
		return nil, ErrDuplicateSession
	}
	s.sessions[id] = &entry{rec: rec}
	return copyRecord(rec), nil
}

// Get returns a copy of the record for id, or ErrSessionNotFound.
func (s *Store) Get(id string) (*model.Record, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyRecord(e.rec), nil
}

// Update atomically applies fn to the record for id while holding that
// record's lock. This is the single serialization point: all reads and writes
// of a record's accumulator and state happen inside fn, so concurrent
// operations on the same session are strictly serialized while operations on
// different sessions proceed independently.
//
// If fn returns an error the record keeps whatever state fn left it in;
// callers must not partially mutate before failing.
func (s *Store) Update(id string, fn func(*model.Record) error) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.rec)
}

// Len returns the number of records currently held, in any state.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes Ended records whose EndedAt is before the cutoff and returns
// how many were evicted. Active sessions are never removed. Records removed
// by Sweep free their ids for reuse; retention therefore has to be long
// enough that duplicate-id detection stays meaningful for live callers.
func (s *Store) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, e := range s.sessions {
		e.mu.Lock()
		expired := e.rec.State.IsTerminal() && !e.rec.EndedAt.IsZero() && e.rec.EndedAt.Before(cutoff)
		e.mu.Unlock()
		if expired {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *Store) lookup(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

// copyRecord returns a shallow copy. Metadata is shared: it is immutable
// after creation by contract, so sharing is safe.
func copyRecord(rec *model.Record) *model.Record {
	cp := *rec
	return &cp
}
