// SPDX-License-Identifier: MIT

package daemon

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/titanx/halo/internal/session/store"
)

// Deps contains dependencies required by the daemon Manager. Keeping them
// explicit makes tests trivial to wire.
type Deps struct {
	// Logger is the structured logger for the daemon
	Logger zerolog.Logger

	// APIHandler is the HTTP handler for the API server
	APIHandler http.Handler

	// MetricsHandler is the HTTP handler for Prometheus metrics (if enabled)
	MetricsHandler http.Handler

	// MetricsAddr is the metrics listen address; empty disables the listener
	MetricsAddr string

	// Store is the session store, swept by the retention sweeper
	Store *store.Store

	// SessionRetention is how long ended sessions are kept. Zero disables
	// the sweeper.
	SessionRetention time.Duration

	// SweepInterval is how often the sweeper runs
	SweepInterval time.Duration
}

// Validate checks if the dependencies are valid.
func (d *Deps) Validate() error {
	if d.Logger.GetLevel() == zerolog.Disabled {
		return ErrMissingLogger
	}
	if d.APIHandler == nil {
		return ErrMissingAPIHandler
	}
	if d.SessionRetention > 0 && d.Store == nil {
		return ErrMissingStore
	}
	return nil
}
