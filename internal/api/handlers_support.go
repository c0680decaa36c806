// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/titanx/halo/internal/marketing"
	"github.com/titanx/halo/internal/support"
)

const (
	sourceSupport   = "halo-support-v1"
	sourceMarketing = "halo-marketing-v1"
)

func (s *Server) handleSupportAsk(w http.ResponseWriter, r *http.Request) {
	var req support.Request
	if msg := decodeBody(w, r, &req); msg != "" {
		s.writeError(w, r, http.StatusBadRequest, "", "", msg)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		s.writeError(w, r, http.StatusBadRequest, "", "support_error",
			"Invalid question: must be a non-empty string.")
		return
	}

	answer := support.Ask(req)

	env := s.envelope()
	env.Event = "support_answer"
	env.Data = answer
	env.Meta.Source = sourceSupport
	s.writeEnvelope(w, r, http.StatusOK, env)
}

type marketingRequest struct {
	UseCase         string `json:"use_case"`
	Audience        string `json:"audience"`
	Tone            string `json:"tone"`
	ProductName     string `json:"product_name"`
	IncludeVariants *bool  `json:"include_variants"`
}

func (s *Server) handleMarketingGenerate(w http.ResponseWriter, r *http.Request) {
	var req marketingRequest
	if msg := decodeBody(w, r, &req); msg != "" {
		s.writeError(w, r, http.StatusBadRequest, "", "", msg)
		return
	}

	tone := req.Tone
	if tone == "" {
		tone = "neutral"
	}
	includeVariants := true
	if req.IncludeVariants != nil {
		includeVariants = *req.IncludeVariants
	}

	c, err := marketing.Generate(marketing.Request{
		UseCase:         req.UseCase,
		Audience:        req.Audience,
		Tone:            tone,
		ProductName:     req.ProductName,
		IncludeVariants: includeVariants,
	})
	if err != nil {
		var uv *marketing.UnsupportedValueError
		if errors.As(err, &uv) {
			s.writeError(w, r, http.StatusBadRequest, "", "marketing_error", uv.Error())
			return
		}
		s.writeError(w, r, http.StatusInternalServerError, "", "marketing_error", "Internal error.")
		return
	}

	env := s.envelope()
	env.Event = "marketing_copy"
	env.Data = c
	env.Meta.Source = sourceMarketing
	s.writeEnvelope(w, r, http.StatusOK, env)
}
