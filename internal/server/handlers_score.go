package server

import (
	"net/http"

	"github.com/equilibria/burnout-risk/internal/forecast"
	"github.com/equilibria/burnout-risk/internal/risk"
	"github.com/equilibria/burnout-risk/internal/types"
)

// handleScore scores a complete record. All five metrics are required here;
// partial records are accepted by check-ins and what-if.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	result, err := risk.CalculateRisk(req.Metrics())
	if err != nil {
		observeScore("score", 0, err)
		s.handleError(w, r, err)
		return
	}
	observeScore("score", result.BurnoutProbability, nil)

	s.jsonResponse(w, http.StatusOK, result)
}

// handleForecast projects a risk history forward. A body without past_scores is a
// validation error (400); a history shorter than two points is 422.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	var req types.ForecastRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	result, err := forecast.ForecastRisk(req.PastScores)
	observeForecast(err)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleWhatIf compares a baseline with the same record after applying changes
func (s *Server) handleWhatIf(w http.ResponseWriter, r *http.Request) {
	var req types.WhatIfRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	result, err := risk.WhatIf(req.Baseline, req.Changes)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleScenario returns a sample profile and its score
func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	metrics, err := risk.Scenario(name)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	result, err := risk.CalculateRisk(metrics)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ScenarioResult{Name: name, Metrics: metrics, Result: result})
}
