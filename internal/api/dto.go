// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/titanx/halo/internal/session/model"
)

type startRequest struct {
	SessionID string         `json:"session_id"`
	UserID    string         `json:"user_id"`
	Metadata  model.Metadata `json:"metadata"`
}

type eventContext struct {
	Page    string         `json:"page,omitempty"`
	Element string         `json:"element,omitempty"`
	Extra   map[string]any `json:"extra,omitempty"`
}

// eventRequest uses pointers for the numeric fields so absence can be told
// apart from an explicit zero.
type eventRequest struct {
	SessionID  string        `json:"session_id"`
	EventType  string        `json:"event_type"`
	Timestamp  *float64      `json:"timestamp"`
	Friction   *float64      `json:"friction"`
	Hesitation *float64      `json:"hesitation"`
	Pace       *float64      `json:"pace"`
	Context    *eventContext `json:"context"`
}

type endRequest struct {
	SessionID      string         `json:"session_id"`
	Metadata       model.Metadata `json:"metadata"`
	IncludeSummary *bool          `json:"include_summary"`
}

// decodeBody parses a JSON request body into dst with a size cap. The
// returned string is a client-facing message; empty means success.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) string {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return "Invalid JSON body."
	}
	return ""
}

func validateSessionID(sessionID string) string {
	if strings.TrimSpace(sessionID) == "" {
		return "Invalid session_id: must be a non-empty string."
	}
	return ""
}

func validateEventType(eventType string) string {
	if strings.TrimSpace(eventType) == "" {
		return "Invalid event_type: must be a non-empty string."
	}
	return ""
}

func validateTimestamp(ts *float64) string {
	if ts == nil {
		return "Invalid timestamp: must be a number."
	}
	if math.IsNaN(*ts) || math.IsInf(*ts, 0) {
		return "Invalid timestamp: must be a finite number."
	}
	if *ts < 0 {
		return "Invalid timestamp: must be >= 0."
	}
	return ""
}

// validateSignal checks an optional behavioural score. Nil means the signal
// was not sent and is fine.
func validateSignal(name string, value *float64) string {
	if value == nil {
		return ""
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return fmt.Sprintf("Invalid %s: must be a finite number.", name)
	}
	if *value < 0 {
		return fmt.Sprintf("Invalid %s: must be >= 0.", name)
	}
	return ""
}

func (req *eventRequest) validate() string {
	if msg := validateSessionID(req.SessionID); msg != "" {
		return msg
	}
	if msg := validateEventType(req.EventType); msg != "" {
		return msg
	}
	if msg := validateTimestamp(req.Timestamp); msg != "" {
		return msg
	}
	if msg := validateSignal("friction", req.Friction); msg != "" {
		return msg
	}
	if msg := validateSignal("hesitation", req.Hesitation); msg != "" {
		return msg
	}
	return validateSignal("pace", req.Pace)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
