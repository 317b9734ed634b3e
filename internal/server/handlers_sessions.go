package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/equilibria/burnout-risk/internal/server/middleware"
)

// handleCreateSession registers an anonymous user and returns its bearer token
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	userID, err := s.store.CreateUser(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	session, err := s.jwtService.IssueSession(userID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.log.WithField("user_id", userID).Info("Session created")
	s.jsonResponse(w, http.StatusCreated, session)
}

// currentUser returns the authenticated user, confirming it still exists
func (s *Server) currentUser(ctx context.Context) (uuid.UUID, error) {
	userID, err := middleware.UserIDFrom(ctx)
	if err != nil {
		return uuid.Nil, &ErrSessionRevoked{}
	}

	exists, err := s.store.TouchUser(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if !exists {
		return uuid.Nil, &ErrSessionRevoked{}
	}
	return userID, nil
}
