// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the application.
const (
	// HTTP attributes
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"
	HTTPURLKey        = "http.url"

	// Session attributes
	SessionIDKey    = "session.id"
	SessionStateKey = "session.state"
	EventTypeKey    = "session.event_type"
	EventsCountKey  = "session.events_count"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// HTTPAttributes creates common HTTP span attributes.
func HTTPAttributes(method, route, url string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPRouteKey, route),
		attribute.String(HTTPURLKey, url),
		attribute.Int(HTTPStatusCodeKey, statusCode),
	}
}

// SessionAttributes creates session-related span attributes. Only the opaque
// session id is recorded, never metadata or signal values.
func SessionAttributes(sessionID string) []attribute.KeyValue {
	if sessionID == "" {
		return nil
	}
	return []attribute.KeyValue{
		attribute.String(SessionIDKey, sessionID),
	}
}

// ErrorAttributes creates error span attributes.
func ErrorAttributes(errType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errType),
	}
}
