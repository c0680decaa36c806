// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"net/http"

	"github.com/titanx/halo/internal/session/engine"
	"github.com/titanx/halo/internal/session/store"
)

// engineErrorStatus maps an engine error to an HTTP status and a
// client-facing message. Validation failures are the client's fault,
// lifecycle conflicts are 409, unknown sessions are 404.
func engineErrorStatus(err error) (int, string) {
	var ve *engine.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.Is(err, store.ErrSessionNotFound):
		return http.StatusNotFound, "Session not found."
	case errors.Is(err, store.ErrDuplicateSession):
		return http.StatusConflict, "Session already exists."
	case errors.Is(err, engine.ErrSessionClosed):
		return http.StatusConflict, "Session is closed."
	case errors.Is(err, engine.ErrSessionAlreadyEnded):
		return http.StatusConflict, "Session already ended."
	}
	return http.StatusInternalServerError, "Internal error."
}
