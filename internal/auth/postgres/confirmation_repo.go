// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/accountd/accountd/internal/auth"
)

// ConfirmationRepository implements auth.ConfirmationRepository using PostgreSQL.
type ConfirmationRepository struct {
	pool poolIface
}

// NewConfirmationRepository creates a new ConfirmationRepository.
func NewConfirmationRepository(pool poolIface) *ConfirmationRepository {
	return &ConfirmationRepository{pool: pool}
}

// Create stores a new confirmation.
func (r *ConfirmationRepository) Create(ctx context.Context, confirmation *auth.Confirmation) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO confirmations (id, email, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`,
		confirmation.ID.String(),
		confirmation.Email,
		confirmation.ExpiresAt,
		confirmation.CreatedAt,
	)
	if err != nil {
		return auth.TranslateStorageError(err)
	}
	return nil
}

// GetByID retrieves a confirmation by its id.
func (r *ConfirmationRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.Confirmation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, expires_at, created_at
		FROM confirmations
		WHERE id = $1
	`, id.String())

	confirmation, err := scanConfirmation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code(auth.CodeNotFound).
			With("confirmation_id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return confirmation, nil
}

// DeleteExpired removes all expired confirmations. Housekeeping only;
// redemption never depends on it because expiry is checked on read.
func (r *ConfirmationRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.pool.Exec(ctx, `
		DELETE FROM confirmations WHERE expires_at <= NOW()
	`)
	if err != nil {
		return 0, auth.TranslateStorageError(err)
	}
	return result.RowsAffected(), nil
}

// scanConfirmation scans a single row into a Confirmation.
// Callers are responsible for handling pgx.ErrNoRows.
func scanConfirmation(row pgx.Row) (*auth.Confirmation, error) {
	var (
		idStr     string
		email     string
		expiresAt time.Time
		createdAt time.Time
	)

	err := row.Scan(&idStr, &email, &expiresAt, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, auth.TranslateStorageError(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code(auth.CodeGeneric).
			With("operation", "parse confirmation id").
			With("id", idStr).
			Wrap(err)
	}

	return &auth.Confirmation{
		ID:        id,
		Email:     email,
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}, nil
}

// Compile-time interface check.
var _ auth.ConfirmationRepository = (*ConfirmationRepository)(nil)
