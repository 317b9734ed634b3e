package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/equilibria/burnout-risk/internal/types"
)

// SavePulseReading stores the latest reading for its token, replacing any previous one
func (db *DB) SavePulseReading(ctx context.Context, reading types.PulseReading) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO pulse_readings (token, heart_rate, breathing_rate, confidence, stress_index, break_recommended, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (token) DO UPDATE SET
		   heart_rate = $2, breathing_rate = $3, confidence = $4,
		   stress_index = $5, break_recommended = $6, created_at = $7`,
		reading.Token, reading.HeartRate, reading.BreathingRate, reading.Confidence,
		reading.StressIndex, reading.BreakRecommended, reading.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save pulse reading: %w", err)
	}
	return nil
}

// GetPulseReading returns the reading for token captured after since, or nil if there is none
func (db *DB) GetPulseReading(ctx context.Context, token uuid.UUID, since time.Time) (*types.PulseReading, error) {
	var r types.PulseReading
	err := db.pool.QueryRow(ctx,
		`SELECT token, heart_rate, breathing_rate, confidence, stress_index, break_recommended, created_at
		 FROM pulse_readings WHERE token = $1 AND created_at > $2`,
		token, since,
	).Scan(&r.Token, &r.HeartRate, &r.BreathingRate, &r.Confidence, &r.StressIndex, &r.BreakRecommended, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pulse reading: %w", err)
	}
	return &r, nil
}

// DeletePulseReadingsBefore removes readings captured at or before cutoff and returns how many were deleted
func (db *DB) DeletePulseReadingsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM pulse_readings WHERE created_at <= $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune pulse readings: %w", err)
	}
	return result.RowsAffected(), nil
}
