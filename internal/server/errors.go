package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/equilibria/burnout-risk/internal/dashboard"
	"github.com/equilibria/burnout-risk/internal/extraction"
	"github.com/equilibria/burnout-risk/internal/forecast"
	"github.com/equilibria/burnout-risk/internal/risk"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a requested resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrSessionRevoked indicates a valid token whose user no longer exists
type ErrSessionRevoked struct{}

func (e *ErrSessionRevoked) Error() string {
	return "session is no longer valid"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		fieldErrs     validator.ValidationErrors
		notFoundErr   *ErrNotFound
		revokedErr    *ErrSessionRevoked
	)

	switch {
	case errors.Is(err, risk.ErrNoValidInputs),
		errors.Is(err, forecast.ErrInsufficientHistory):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validationErr),
		errors.As(err, &fieldErrs),
		errors.Is(err, forecast.ErrNonFiniteScore),
		errors.Is(err, extraction.ErrEmptyJournal):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr),
		errors.Is(err, risk.ErrUnknownScenario),
		errors.Is(err, dashboard.ErrNoCheckIns):
		return http.StatusNotFound
	case errors.As(err, &revokedErr):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage renders err for a client. Field validation failures list the offending fields.
func ErrorMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field())
		}
		return "Missing or invalid fields: " + strings.Join(fields, ", ")
	}

	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	}

	if errors.Is(err, risk.ErrNoValidInputs) {
		return risk.ErrNoValidInputs.Error()
	}

	return err.Error()
}
