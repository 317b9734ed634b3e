package server

import (
	"net/http"

	"github.com/equilibria/burnout-risk/internal/extraction"
	"github.com/equilibria/burnout-risk/internal/risk"
	"github.com/equilibria/burnout-risk/internal/types"
)

// handleAnalyze extracts metrics from a journal entry and optionally scores them
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	extracted, err := s.extract(r, req.JournalText)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	resp := types.AnalyzeResponse{
		MetricInput: extracted.Metrics,
		Provider:    extracted.Provider,
		Summary:     extracted.Summary,
	}

	if req.Score {
		result, err := risk.CalculateRisk(extracted.Metrics)
		observeScore("analyze", probabilityOf(result), err)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		resp.Result = result
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// extract runs the configured extractor and records the outcome
func (s *Server) extract(r *http.Request, text string) (*extraction.Extraction, error) {
	extracted, err := s.extractor.ExtractMetrics(r.Context(), text)
	if err != nil {
		observeExtraction("none", err)
		return nil, err
	}
	observeExtraction(extracted.Provider, nil)
	return extracted, nil
}

func probabilityOf(result *types.RiskResult) float64 {
	if result == nil {
		return 0
	}
	return result.BurnoutProbability
}
