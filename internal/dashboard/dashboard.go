// Package dashboard assembles a user's current risk, its explanation and the projected trend.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/equilibria/burnout-risk/internal/forecast"
	"github.com/equilibria/burnout-risk/internal/risk"
	"github.com/equilibria/burnout-risk/internal/types"
)

// ErrNoCheckIns is returned when the user has not checked in yet.
var ErrNoCheckIns = errors.New("no check-ins recorded")

// Store is the subset of the database the dashboard reads from.
type Store interface {
	ListCheckIns(ctx context.Context, userID uuid.UUID, limit int) ([]types.CheckIn, error)
	RiskHistory(ctx context.Context, userID uuid.UUID) ([]float64, error)
	GetPulseReading(ctx context.Context, token uuid.UUID, since time.Time) (*types.PulseReading, error)
}

// Request selects whose dashboard to build.
type Request struct {
	UserID     uuid.UUID
	PulseToken uuid.UUID // optional; uuid.Nil skips the pulse lookup
	PulseTTL   time.Duration
	Now        time.Time
}

// Build loads the latest check-in, the risk history and the pulse reading concurrently.
func Build(ctx context.Context, store Store, req Request) (*types.Dashboard, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var (
		latest  []types.CheckIn
		history []float64
		reading *types.PulseReading
	)

	g.Go(func() error {
		checkIns, err := store.ListCheckIns(gCtx, req.UserID, 1)
		if err != nil {
			return fmt.Errorf("failed to load latest check-in: %w", err)
		}
		latest = checkIns
		return nil
	})

	g.Go(func() error {
		h, err := store.RiskHistory(gCtx, req.UserID)
		if err != nil {
			return fmt.Errorf("failed to load risk history: %w", err)
		}
		history = h
		return nil
	})

	if req.PulseToken != uuid.Nil {
		g.Go(func() error {
			r, err := store.GetPulseReading(gCtx, req.PulseToken, req.Now.Add(-req.PulseTTL))
			if err != nil {
				return fmt.Errorf("failed to load pulse reading: %w", err)
			}
			reading = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(latest) == 0 || latest[0].Result == nil {
		return nil, ErrNoCheckIns
	}

	trend, err := forecast.ForecastRisk(Series(history, latest[0].Result.RiskIndexRaw))
	if err != nil {
		return nil, fmt.Errorf("failed to forecast risk: %w", err)
	}

	result := latest[0].Result
	status := risk.StatusFor(result.BurnoutProbability)
	return &types.Dashboard{
		RiskPercent: result.BurnoutProbability,
		StatusColor: status,
		Factors:     risk.FactorValues(result),
		Forecast:    trend,
		AlertText:   risk.AlertText(status),
		Explanation: risk.Explain(result),
		Actions:     risk.Actions(status),
		CheckIns:    max(len(history), 1),
		Pulse:       reading,
	}, nil
}

// Series returns the history to forecast from. A single point is repeated so a flat
// forecast can still be drawn; an empty history falls back to the latest value.
func Series(history []float64, latest float64) []float64 {
	switch len(history) {
	case 0:
		return []float64{latest, latest}
	case 1:
		return []float64{history[0], history[0]}
	default:
		return history
	}
}
