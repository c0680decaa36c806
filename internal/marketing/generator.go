// SPDX-License-Identifier: MIT

// Package marketing generates short, template-driven marketing copy for
// developer-facing contexts. There are no external AI calls; output is a
// deterministic function of the request.
package marketing

import (
	"fmt"
	"sort"
	"strings"
)

const defaultProductName = "Halo"

// Supported enumerations. Requests outside these sets are rejected.
var (
	supportedUseCases = map[string]bool{
		"landing_headline":  true,
		"feature_blurb":     true,
		"dev_portal_intro":  true,
		"changelog_snippet": true,
		"email_invite":      true,
	}

	supportedTones = map[string]bool{
		"neutral":   true,
		"friendly":  true,
		"technical": true,
	}

	supportedAudiences = map[string]bool{
		"developer": true,
		"cto":       true,
		"product":   true,
	}
)

// UnsupportedValueError reports a request field outside the supported set.
type UnsupportedValueError struct {
	Field     string
	Value     string
	Supported []string
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("unsupported %s %q. Supported: %s.",
		e.Field, e.Value, strings.Join(e.Supported, ", "))
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Request describes the copy to generate. Tone defaults to "neutral" and
// IncludeVariants to true when the request comes through the HTTP layer.
type Request struct {
	UseCase         string `json:"use_case"`
	Audience        string `json:"audience"`
	Tone            string `json:"tone"`
	ProductName     string `json:"product_name,omitempty"`
	IncludeVariants bool   `json:"include_variants"`
}

// Copy is the generated output.
type Copy struct {
	Primary     string   `json:"primary"`
	Variants    []string `json:"variants"`
	UseCase     string   `json:"use_case"`
	Audience    string   `json:"audience"`
	Tone        string   `json:"tone"`
	ProductName string   `json:"product_name"`
}

// Generate validates the request and produces copy for it.
func Generate(req Request) (*Copy, error) {
	if !supportedUseCases[req.UseCase] {
		return nil, &UnsupportedValueError{
			Field: "use_case", Value: req.UseCase, Supported: sortedKeys(supportedUseCases),
		}
	}
	if !supportedAudiences[req.Audience] {
		return nil, &UnsupportedValueError{
			Field: "audience", Value: req.Audience, Supported: sortedKeys(supportedAudiences),
		}
	}
	if !supportedTones[req.Tone] {
		return nil, &UnsupportedValueError{
			Field: "tone", Value: req.Tone, Supported: sortedKeys(supportedTones),
		}
	}

	product := req.ProductName
	if product == "" {
		product = defaultProductName
	}

	var primary string
	switch req.UseCase {
	case "landing_headline":
		primary = landingHeadline(product, req.Audience, req.Tone)
	case "feature_blurb":
		primary = featureBlurb(product, req.Tone)
	case "dev_portal_intro":
		primary = devPortalIntro(product, req.Tone)
	case "changelog_snippet":
		primary = changelogSnippet(product)
	case "email_invite":
		primary = emailInvite(product, req.Audience, req.Tone)
	}

	c := &Copy{
		Primary:     primary,
		Variants:    []string{},
		UseCase:     req.UseCase,
		Audience:    req.Audience,
		Tone:        req.Tone,
		ProductName: product,
	}
	if req.IncludeVariants {
		c.Variants = variants(req.UseCase, product)
	}
	return c, nil
}

func landingHeadline(product, audience, tone string) string {
	switch audience {
	case "developer":
		switch tone {
		case "technical":
			return product + ": behavioural telemetry for real-time product decisions."
		case "friendly":
			return product + ": understand user behaviour without drowning in analytics."
		default:
			return product + ": a lightweight behavioural engine for modern apps."
		}
	case "cto":
		return product + ": a low-friction way to add behavioural intelligence to your stack."
	case "product":
		return product + ": see how users actually move through your product, in real time."
	}
	return product + ": lightweight behavioural intelligence for your product."
}

func featureBlurb(product, tone string) string {
	base := product + " tracks simple signals like friction, hesitation and pace per session, " +
		"then returns clean, low-noise metrics you can plug into experiments, onboarding flows " +
		"or internal dashboards."
	switch tone {
	case "technical":
		return base + " The API is stateless on the client side, with a small set of " +
			"endpoints that are easy to wrap in any backend or workflow tool."
	case "friendly":
		return base + " You send a few numbers per event, and it gives you rolling summaries " +
			"that are easy for teams to talk about and act on."
	}
	return base + " It is designed to be simple to adopt, without forcing you to rethink your stack."
}

func devPortalIntro(product, tone string) string {
	if tone == "technical" {
		return product + " is a small HTTP service with three core endpoints: start, event " +
			"and end. You POST a session_id and a few numeric signals, and it returns rolling " +
			"behavioural metrics you can feed into your own decision logic."
	}
	return product + " gives you a focused set of APIs so you can start capturing behavioural " +
		"signals in minutes, not weeks."
}

func changelogSnippet(product string) string {
	return "Added " + product + " v1 as a lightweight behavioural engine. " +
		"It exposes /v1/start, /v1/event and /v1/end, and returns rolling averages for key " +
		"signals like friction, hesitation and pace."
}

func emailInvite(product, audience, tone string) string {
	greeting := "Hi there,"
	switch audience {
	case "developer":
		greeting = "Hey,"
	case "cto":
		greeting = "Hi,"
	}

	var b strings.Builder
	b.WriteString(greeting)
	b.WriteString("\n\nWe've been working on ")
	b.WriteString(product)
	b.WriteString(", a small behavioural engine you can drop into an existing product to " +
		"capture simple signals like friction, hesitation and pace per session.\n\n")
	b.WriteString("It is intentionally low resolution: just enough signal to inform decisions, " +
		"without adding a heavy analytics layer.\n\n")

	if tone == "technical" {
		b.WriteString("The API surface is three main endpoints (start, event, end) and the " +
			"responses are designed to be easy to log, chart or feed into feature flags.\n\n")
	} else {
		b.WriteString("If you're curious, we can share a Postman collection and a short " +
			"walkthrough showing how teams plug it into onboarding and feature experiments.\n\n")
	}

	b.WriteString("If this sounds useful, reply and I'll send over the details.\n\nBest,\nThe " +
		product + " team")
	return b.String()
}

func variants(useCase, product string) []string {
	switch useCase {
	case "landing_headline":
		return []string{
			"Add behavioural intelligence to your product with " + product + ".",
			product + " helps you see where users slow down, hesitate and drop off.",
		}
	case "feature_blurb":
		return []string{
			"Capture a few numeric signals per event and get back rolling metrics you can " +
				"plug into experiments.",
		}
	case "dev_portal_intro":
		return []string{
			product + " focuses on a small, predictable API surface so you can integrate it quickly.",
		}
	case "changelog_snippet":
		return []string{
			"Introduced a dedicated behavioural engine service, keeping core product logic " +
				"separate from telemetry.",
		}
	case "email_invite":
		return []string{
			"I can share a quick Postman collection if you'd like to see how it works in practice.",
		}
	}
	return []string{}
}
