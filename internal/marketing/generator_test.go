// SPDX-License-Identifier: MIT

package marketing

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLandingHeadlineByAudienceAndTone(t *testing.T) {
	tests := []struct {
		name     string
		audience string
		tone     string
		contains string
	}{
		{"developer technical", "developer", "technical", "behavioural telemetry"},
		{"developer friendly", "developer", "friendly", "without drowning in analytics"},
		{"developer neutral", "developer", "neutral", "lightweight behavioural engine"},
		{"cto", "cto", "neutral", "low-friction way"},
		{"product", "product", "neutral", "in real time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Generate(Request{
				UseCase:  "landing_headline",
				Audience: tt.audience,
				Tone:     tt.tone,
			})
			require.NoError(t, err)
			assert.Contains(t, c.Primary, tt.contains)
			assert.True(t, strings.HasPrefix(c.Primary, "Halo"))
		})
	}
}

func TestGenerateProductNameOverride(t *testing.T) {
	c, err := Generate(Request{
		UseCase:     "changelog_snippet",
		Audience:    "developer",
		Tone:        "neutral",
		ProductName: "Acme Pulse",
	})
	require.NoError(t, err)
	assert.Contains(t, c.Primary, "Acme Pulse")
	assert.Equal(t, "Acme Pulse", c.ProductName)
}

func TestGenerateVariantsToggle(t *testing.T) {
	with, err := Generate(Request{
		UseCase: "landing_headline", Audience: "developer", Tone: "neutral",
		IncludeVariants: true,
	})
	require.NoError(t, err)
	assert.Len(t, with.Variants, 2)

	without, err := Generate(Request{
		UseCase: "landing_headline", Audience: "developer", Tone: "neutral",
		IncludeVariants: false,
	})
	require.NoError(t, err)
	assert.Empty(t, without.Variants)
}

func TestGenerateAllUseCases(t *testing.T) {
	for uc := range supportedUseCases {
		t.Run(uc, func(t *testing.T) {
			c, err := Generate(Request{
				UseCase: uc, Audience: "developer", Tone: "technical",
				IncludeVariants: true,
			})
			require.NoError(t, err)
			assert.NotEmpty(t, c.Primary)
			assert.NotEmpty(t, c.Variants)
			assert.Equal(t, uc, c.UseCase)
		})
	}
}

func TestGenerateEmailInviteGreetings(t *testing.T) {
	dev, err := Generate(Request{UseCase: "email_invite", Audience: "developer", Tone: "neutral"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dev.Primary, "Hey,"))

	cto, err := Generate(Request{UseCase: "email_invite", Audience: "cto", Tone: "technical"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(cto.Primary, "Hi,"))
	assert.Contains(t, cto.Primary, "feature flags")
}

func TestGenerateRejectsUnsupportedValues(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"use case", Request{UseCase: "tweet_storm", Audience: "developer", Tone: "neutral"}, "use_case"},
		{"audience", Request{UseCase: "feature_blurb", Audience: "investor", Tone: "neutral"}, "audience"},
		{"tone", Request{UseCase: "feature_blurb", Audience: "developer", Tone: "sarcastic"}, "tone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Generate(tt.req)
			require.Error(t, err)
			assert.Nil(t, c)

			var uv *UnsupportedValueError
			require.True(t, errors.As(err, &uv))
			assert.Equal(t, tt.field, uv.Field)
			assert.Contains(t, err.Error(), "Supported:")
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	req := Request{
		UseCase: "feature_blurb", Audience: "product", Tone: "friendly",
		IncludeVariants: true,
	}
	first, err := Generate(req)
	require.NoError(t, err)
	second, err := Generate(req)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(first, second))
}
