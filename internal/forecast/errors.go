package forecast

import (
	"errors"
	"fmt"
)

// ErrInsufficientHistory is matched by InsufficientHistoryError.
var ErrInsufficientHistory = errors.New("insufficient history")

// ErrNonFiniteScore is matched by NonFiniteScoreError.
var ErrNonFiniteScore = errors.New("non-finite score")

// InsufficientHistoryError indicates too few historical points to fit a trend.
type InsufficientHistoryError struct {
	Points   int
	Required int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history: need at least %d scores, got %d", e.Required, e.Points)
}

// Is reports whether target is ErrInsufficientHistory.
func (e *InsufficientHistoryError) Is(target error) bool {
	return target == ErrInsufficientHistory
}

// NonFiniteScoreError indicates a NaN or infinite value in the history.
type NonFiniteScoreError struct {
	Index int
}

func (e *NonFiniteScoreError) Error() string {
	return fmt.Sprintf("non-finite score at index %d", e.Index)
}

// Is reports whether target is ErrNonFiniteScore.
func (e *NonFiniteScoreError) Is(target error) bool {
	return target == ErrNonFiniteScore
}
