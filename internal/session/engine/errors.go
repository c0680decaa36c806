// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionClosed is returned when an event targets an Ended session.
	ErrSessionClosed = errors.New("session is closed")

	// ErrSessionAlreadyEnded is returned when End is called on an Ended
	// session.
	ErrSessionAlreadyEnded = errors.New("session already ended")
)

// ValidationError reports malformed input: a non-finite numeric signal or
// structurally invalid metadata.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func isErr(err, target error) bool {
	return errors.Is(err, target)
}
