package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/equilibria/burnout-risk/internal/types"
)

// Check-in listing limits
const (
	DefaultCheckInLimit = 30
	MaxCheckInLimit     = 365
)

const dateLayout = "2006-01-02"

const checkInColumns = `id, user_id, check_in_date, metrics, journal_text, result, explanation, created_at`

// CreateCheckIn stores a scored check-in. ID and CreatedAt are assigned when unset,
// and Date defaults to the creation day.
func (db *DB) CreateCheckIn(ctx context.Context, checkIn *types.CheckIn) error {
	if checkIn.ID == uuid.Nil {
		checkIn.ID = uuid.New()
	}
	if checkIn.CreatedAt.IsZero() {
		checkIn.CreatedAt = time.Now().UTC()
	}
	date, err := checkInDate(checkIn.Date, checkIn.CreatedAt)
	if err != nil {
		return err
	}
	checkIn.Date = date.Format(dateLayout)

	metricsJSON, err := json.Marshal(checkIn.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}
	resultJSON, err := json.Marshal(checkIn.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO check_ins (`+checkInColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		checkIn.ID, checkIn.UserID, date, metricsJSON, checkIn.JournalText, resultJSON, checkIn.Explanation, checkIn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create check-in: %w", err)
	}
	return nil
}

// ListCheckIns returns a user's check-ins, newest first
func (db *DB) ListCheckIns(ctx context.Context, userID uuid.UUID, limit int) ([]types.CheckIn, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+checkInColumns+`
		 FROM check_ins WHERE user_id = $1
		 ORDER BY check_in_date DESC, created_at DESC LIMIT $2`,
		userID, ClampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	defer rows.Close()

	var checkIns []types.CheckIn
	for rows.Next() {
		var (
			c           types.CheckIn
			date        time.Time
			metricsJSON []byte
			resultJSON  []byte
		)
		if err := rows.Scan(&c.ID, &c.UserID, &date, &metricsJSON, &c.JournalText, &resultJSON, &c.Explanation, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		c.Date = date.Format(dateLayout)
		if err := decodeCheckIn(&c, metricsJSON, resultJSON); err != nil {
			return nil, err
		}
		checkIns = append(checkIns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	return checkIns, nil
}

// RiskHistory returns the raw risk index of each check-in in chronological order
func (db *DB) RiskHistory(ctx context.Context, userID uuid.UUID) ([]float64, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT (result->>'risk_index_raw')::double precision
		 FROM check_ins WHERE user_id = $1
		 ORDER BY check_in_date ASC, created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load risk history: %w", err)
	}
	defer rows.Close()

	var history []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan risk history: %w", err)
		}
		history = append(history, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load risk history: %w", err)
	}
	return history, nil
}

// ClampLimit bounds a requested page size, using the default for non-positive values.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultCheckInLimit
	case limit > MaxCheckInLimit:
		return MaxCheckInLimit
	default:
		return limit
	}
}

func checkInDate(date string, createdAt time.Time) (time.Time, error) {
	if date == "" {
		y, m, d := createdAt.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid check-in date %q: %w", date, err)
	}
	return parsed, nil
}

func decodeCheckIn(c *types.CheckIn, metricsJSON, resultJSON []byte) error {
	if err := json.Unmarshal(metricsJSON, &c.Metrics); err != nil {
		return fmt.Errorf("failed to decode check-in metrics: %w", err)
	}
	if len(resultJSON) > 0 {
		var result types.RiskResult
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return fmt.Errorf("failed to decode check-in result: %w", err)
		}
		c.Result = &result
	}
	return nil
}
