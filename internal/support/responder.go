// SPDX-License-Identifier: MIT

// Package support implements the deterministic support responder: a small
// built-in FAQ matched by token overlap, plus a friendly explainer for common
// error messages. Everything is a pure function over its input; there are no
// external calls and no shared state.
package support

import (
	"strings"
)

// FAQItem is one entry of the built-in knowledge base.
type FAQItem struct {
	ID                  string         `json:"id"`
	Title               string         `json:"title"`
	Tags                []string       `json:"tags"`
	Endpoint            string         `json:"endpoint,omitempty"`
	Answer              string         `json:"answer"`
	ExampleRequest      map[string]any `json:"example_request,omitempty"`
	ExampleResponseHint string         `json:"example_response_hint,omitempty"`
}

// Request is a free-form support question.
type Request struct {
	Question        string `json:"question"`
	Endpoint        string `json:"endpoint,omitempty"`
	ErrorMessage    string `json:"error_message,omitempty"`
	IncludeExamples bool   `json:"include_examples"`
}

// ErrorExplanation is a friendly breakdown of an error message.
type ErrorExplanation struct {
	Explanation string   `json:"explanation"`
	Hints       []string `json:"hints"`
}

// Answer is the responder output.
type Answer struct {
	Answer              string            `json:"answer"`
	TopicID             string            `json:"topic_id,omitempty"`
	Endpoint            string            `json:"endpoint,omitempty"`
	ExampleRequest      map[string]any    `json:"example_request,omitempty"`
	ExampleResponseHint string            `json:"example_response_hint,omitempty"`
	ErrorExplanation    *ErrorExplanation `json:"error_explanation,omitempty"`
	SuggestedNextAction string            `json:"suggested_next_action,omitempty"`
}

var faqItems = []FAQItem{
	{
		ID:       "start-session",
		Title:    "How do I start a session?",
		Tags:     []string{"start", "session", "begin", "initialise", "init"},
		Endpoint: "/v1/start",
		Answer: "To start a session, send a POST request to /v1/start with a JSON body " +
			"containing at least a non-empty 'session_id'. You can also pass an optional " +
			"'user_id' and 'metadata' dictionary.",
		ExampleRequest: map[string]any{
			"method": "POST",
			"url":    "/v1/start",
			"body": map[string]any{
				"session_id": "demo-session-1",
				"user_id":    "user-123",
				"metadata":   map[string]any{"source": "docs-example"},
			},
		},
		ExampleResponseHint: "Look for ok=true and event='session_started'.",
	},
	{
		ID:       "record-event",
		Title:    "How do I record behavioural events?",
		Tags:     []string{"event", "record", "metrics", "signals", "friction", "hesitation", "pace"},
		Endpoint: "/v1/event",
		Answer: "Use POST /v1/event to record behavioural signals for an existing session. " +
			"You must provide 'session_id', 'event_type', and 'timestamp'. You can optionally " +
			"include 'friction', 'hesitation', and 'pace' scores plus a 'context' object. " +
			"The engine will update the rolling averages for that session.",
		ExampleRequest: map[string]any{
			"method": "POST",
			"url":    "/v1/event",
			"body": map[string]any{
				"session_id": "demo-session-1",
				"event_type": "focus_shift",
				"timestamp":  1710000000.0,
				"friction":   0.31,
				"hesitation": 0.45,
				"pace":       0.82,
				"context": map[string]any{
					"page":    "dashboard",
					"element": "hero-cta",
				},
			},
		},
		ExampleResponseHint: "Data will contain 'events_count', 'average_friction', " +
			"'average_hesitation', and 'average_pace'.",
	},
	{
		ID:       "end-session",
		Title:    "How do I end a session and get a summary?",
		Tags:     []string{"end", "finish", "close", "summary"},
		Endpoint: "/v1/end",
		Answer: "To close a session and optionally retrieve summary metrics, call POST /v1/end " +
			"with 'session_id' and, optionally, 'include_summary' (default is true). " +
			"If the session exists, the engine will return final averages for friction, " +
			"hesitation, and pace.",
		ExampleRequest: map[string]any{
			"method": "POST",
			"url":    "/v1/end",
			"body": map[string]any{
				"session_id":      "demo-session-1",
				"include_summary": true,
			},
		},
		ExampleResponseHint: "If include_summary=true, data.summary will mirror the rolling " +
			"metrics you saw from /v1/event.",
	},
	{
		ID:       "health-status",
		Title:    "What are /health and /status for?",
		Tags:     []string{"health", "status", "ping", "uptime"},
		Endpoint: "/health",
		Answer: "GET /health is a lightweight endpoint for uptime checks. Use it from your " +
			"monitoring to confirm the service is reachable. GET /status returns basic service " +
			"metadata such as service name and version, which is useful when debugging deployments.",
		ExampleRequest: map[string]any{
			"method": "GET",
			"url":    "/health",
		},
		ExampleResponseHint: "Expect ok=true if the service is running.",
	},
}

// minScore is the threshold below which a match falls back to generic help.
const minScore = 2

func normalize(text string) []string {
	replaced := strings.NewReplacer("/", " ", "_", " ").Replace(strings.ToLower(text))
	fields := strings.Fields(replaced)
	return fields
}

func scoreMatch(question string, faq FAQItem, endpoint string) int {
	score := 0
	qTokens := make(map[string]bool)
	for _, tok := range normalize(question) {
		qTokens[tok] = true
	}

	// Tag overlap
	for _, tag := range faq.Tags {
		if qTokens[tag] {
			score += 2
		}
	}

	// Endpoint hint
	if endpoint != "" && faq.Endpoint != "" && strings.TrimSpace(endpoint) == faq.Endpoint {
		score += 4
	}

	// Direct word overlap with title
	for _, tok := range normalize(faq.Title) {
		if qTokens[tok] {
			score++
		}
	}

	return score
}

// FindBestMatch returns the best-scoring FAQ item, or nil when no item
// reaches the minimum score.
func FindBestMatch(question, endpoint string) *FAQItem {
	var best *FAQItem
	bestScore := 0

	for i := range faqItems {
		if s := scoreMatch(question, faqItems[i], endpoint); s > bestScore {
			best = &faqItems[i]
			bestScore = s
		}
	}

	if bestScore < minScore {
		return nil
	}
	return best
}

// ExplainError produces a friendly explanation for a raw error message.
func ExplainError(errorMessage string) ErrorExplanation {
	text := strings.ToLower(errorMessage)
	explanation := "General error. Check your request body and headers."
	hints := []string{}

	if strings.Contains(text, "422") || strings.Contains(text, "unprocessable entity") {
		explanation = "HTTP 422 Unprocessable Entity. This usually means your JSON body does " +
			"not match the schema expected by the endpoint (missing fields, wrong types, etc.)."
		hints = append(hints, "Verify all required fields are present and have the right types.")
	}

	if strings.Contains(text, "400") {
		explanation = "HTTP 400 Bad Request. The server could not understand your request. " +
			"Check JSON formatting and any query parameters."
	}

	if strings.Contains(text, "401") || strings.Contains(text, "unauthorized") {
		explanation = "HTTP 401 Unauthorized. This typically indicates missing or invalid " +
			"authentication. The engine does not require auth by default, so this may come " +
			"from your own gateway or proxy."
	}

	if strings.Contains(text, "session") && strings.Contains(text, "not found") {
		hints = append(hints, "Make sure you call /v1/start before sending /v1/event or /v1/end "+
			"for a given session_id.")
	}

	return ErrorExplanation{Explanation: explanation, Hints: hints}
}

// Ask answers a support request deterministically.
func Ask(req Request) Answer {
	faq := FindBestMatch(req.Question, req.Endpoint)

	var answer Answer
	if faq != nil {
		answer = Answer{
			Answer:              faq.Answer,
			TopicID:             faq.ID,
			Endpoint:            faq.Endpoint,
			ExampleResponseHint: faq.ExampleResponseHint,
			SuggestedNextAction: "Try the example request against your running instance.",
		}
		if req.IncludeExamples {
			answer.ExampleRequest = faq.ExampleRequest
		}
	} else {
		answer = Answer{
			Answer: "I couldn't match your question to a specific topic. Make sure you include " +
				"which endpoint you're using (e.g. /v1/start, /v1/event, /v1/end) and what " +
				"you're trying to achieve.",
			Endpoint: req.Endpoint,
			SuggestedNextAction: "Rephrase your question including the endpoint and whether " +
				"you're starting, recording, or ending a session.",
		}
	}

	if req.ErrorMessage != "" {
		explanation := ExplainError(req.ErrorMessage)
		answer.ErrorExplanation = &explanation
	}

	return answer
}
