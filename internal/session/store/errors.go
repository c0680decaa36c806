// SPDX-License-Identifier: MIT

package store

import "errors"

var (
	// ErrDuplicateSession is returned by Create when the id is already
	// known, whether the existing session is Active or Ended.
	ErrDuplicateSession = errors.New("session id already exists")

	// ErrSessionNotFound is returned when the referenced id was never
	// started.
	ErrSessionNotFound = errors.New("session not found")
)
