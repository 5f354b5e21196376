package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lumehq/lume-api/internal/database"
	"github.com/lumehq/lume-api/internal/models"
)

type UserMetaRepository struct {
	q database.Querier
}

func NewUserMetaRepository(db *database.DB) *UserMetaRepository {
	return &UserMetaRepository{q: db.Pool}
}

// WithTx returns a copy of the repository bound to an open transaction.
func (r *UserMetaRepository) WithTx(tx pgx.Tx) *UserMetaRepository {
	return &UserMetaRepository{q: tx}
}

// FindByUserID returns the metadata record for userID, creating an empty
// one when none exists yet. An existing record is returned as-is, never
// treated as a conflict.
func (r *UserMetaRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserMeta, error) {
	meta, err := r.scanOne(r.q.QueryRow(ctx, `
		SELECT user_id, attributes, created_at, updated_at
		FROM user_meta
		WHERE user_id = $1
	`, userID))
	if err == nil {
		return meta, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	meta, err = r.scanOne(r.q.QueryRow(ctx, `
		INSERT INTO user_meta (user_id)
		VALUES ($1)
		RETURNING user_id, attributes, created_at, updated_at
	`, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to create user meta: %w", err)
	}
	return meta, nil
}

// Update merges attrs into the stored attribute mapping and reports whether
// a record existed to update.
func (r *UserMetaRepository) Update(ctx context.Context, userID uuid.UUID, attrs map[string]any) (bool, error) {
	data, err := json.Marshal(attrs)
	if err != nil {
		return false, err
	}

	tag, err := r.q.Exec(ctx, `
		UPDATE user_meta
		SET attributes = attributes || $1::jsonb, updated_at = NOW()
		WHERE user_id = $2
	`, data, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserMetaRepository) Destroy(ctx context.Context, userID uuid.UUID) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM user_meta WHERE user_id = $1`, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserMetaRepository) scanOne(row pgx.Row) (*models.UserMeta, error) {
	var meta models.UserMeta
	var attrs []byte
	if err := row.Scan(&meta.UserID, &attrs, &meta.CreatedAt, &meta.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attrs, &meta.Attributes); err != nil {
		return nil, err
	}
	return &meta, nil
}
