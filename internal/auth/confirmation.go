// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package auth

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// ConfirmationTTL is the fixed window in which a confirmation token can be
// redeemed, counted from creation.
const ConfirmationTTL = 24 * time.Hour

// Confirmation is a persisted invitation: its id doubles as the redemption
// token value sent to the user by email. Multiple outstanding confirmations
// for the same email are allowed; re-requesting simply creates a new row.
// Rows are never updated.
type Confirmation struct {
	ID        ulid.ULID
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpiredAt reports whether the confirmation is no longer redeemable at
// the given time. Expiry is inclusive: a token whose ExpiresAt equals now is
// already expired.
func (c *Confirmation) IsExpiredAt(t time.Time) bool {
	return !t.Before(c.ExpiresAt)
}

// ConfirmationRepository manages confirmation persistence.
type ConfirmationRepository interface {
	// Create stores a new confirmation.
	Create(ctx context.Context, confirmation *Confirmation) error

	// GetByID retrieves a confirmation by its id.
	// Returns ErrNotFound if no such confirmation exists.
	GetByID(ctx context.Context, id ulid.ULID) (*Confirmation, error)

	// DeleteExpired removes all expired confirmations and returns the count
	// of deleted records.
	DeleteExpired(ctx context.Context) (int64, error)
}
