package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/equilibria/burnout-risk/internal/pulse"
	"github.com/equilibria/burnout-risk/internal/types"
)

// handleSavePulse stores a heart and breathing rate reading for a pulse session token
func (s *Server) handleSavePulse(w http.ResponseWriter, r *http.Request) {
	token, err := pulseToken(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req types.PulseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	reading := pulse.NewReading(token, req, s.now())
	if err := s.store.SavePulseReading(r.Context(), reading); err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, reading)
}

// handleGetPulse returns the latest unexpired reading for a token
func (s *Server) handleGetPulse(w http.ResponseWriter, r *http.Request) {
	token, err := pulseToken(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	reading, err := s.store.GetPulseReading(r.Context(), token, s.now().Add(-s.pulseTTL))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if reading == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "pulse reading", ID: token.String()})
		return
	}

	s.jsonResponse(w, http.StatusOK, reading)
}

func pulseToken(r *http.Request) (uuid.UUID, error) {
	token, err := uuid.Parse(r.PathValue("token"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "token", Message: "must be a UUID"}
	}
	return token, nil
}
