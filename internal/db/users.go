package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateUser registers a new anonymous user and returns its ID
func (db *DB) CreateUser(ctx context.Context) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx, `INSERT INTO users (id) VALUES ($1)`, id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// TouchUser records activity for a user. It reports false when the user does not exist.
func (db *DB) TouchUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `UPDATE users SET last_seen = NOW() WHERE id = $1`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to update user: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
