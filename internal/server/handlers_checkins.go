package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/equilibria/burnout-risk/internal/dashboard"
	"github.com/equilibria/burnout-risk/internal/db"
	"github.com/equilibria/burnout-risk/internal/risk"
	"github.com/equilibria/burnout-risk/internal/types"
)

// handleCreateCheckIn scores and stores a daily check-in. When a journal entry is
// included, metrics extracted from it fill any field the request left out.
func (s *Server) handleCreateCheckIn(w http.ResponseWriter, r *http.Request) {
	userID, err := s.currentUser(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.CheckInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	metrics := req.Metrics
	if req.JournalText != "" {
		extracted, err := s.extract(r, req.JournalText)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		metrics = extracted.Metrics.Overlay(req.Metrics)
	}

	result, err := risk.CalculateRisk(metrics)
	observeScore("checkin", probabilityOf(result), err)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	checkIn := &types.CheckIn{
		UserID:      userID,
		Date:        req.Date,
		Metrics:     metrics,
		JournalText: req.JournalText,
		Result:      result,
		Explanation: risk.Explain(result),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.CreateCheckIn(r.Context(), checkIn); err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, checkIn)
}

// handleListCheckIns lists the caller's check-ins, newest first
func (s *Server) handleListCheckIns(w http.ResponseWriter, r *http.Request) {
	userID, err := s.currentUser(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	limit := db.DefaultCheckInLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			s.handleError(w, r, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
	}

	checkIns, err := s.store.ListCheckIns(r.Context(), userID, db.ClampLimit(limit))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if checkIns == nil {
		checkIns = []types.CheckIn{}
	}

	s.jsonResponse(w, http.StatusOK, types.CheckInList{CheckIns: checkIns})
}

// handleDashboard returns the caller's current risk, explanation and forecast.
// An optional pulse_token query parameter attaches the latest live pulse reading.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := s.currentUser(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	req := dashboard.Request{
		UserID:   userID,
		PulseTTL: s.pulseTTL,
		Now:      s.now(),
	}
	if raw := r.URL.Query().Get("pulse_token"); raw != "" {
		token, err := uuid.Parse(raw)
		if err != nil {
			s.handleError(w, r, &ErrValidation{Field: "pulse_token", Message: "must be a UUID"})
			return
		}
		req.PulseToken = token
	}

	result, err := dashboard.Build(r.Context(), s.store, req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}
