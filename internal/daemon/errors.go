// SPDX-License-Identifier: MIT

package daemon

import "errors"

var (
	// ErrMissingLogger is returned when no logger is provided
	ErrMissingLogger = errors.New("logger is required")

	// ErrMissingAPIHandler is returned when no API handler is provided
	ErrMissingAPIHandler = errors.New("API handler is required")

	// ErrMissingStore is returned when session retention is configured
	// without a store to sweep
	ErrMissingStore = errors.New("session store is required when retention is enabled")

	// ErrManagerNotStarted is returned when shutting down a manager that
	// never started
	ErrManagerNotStarted = errors.New("manager not started")
)
