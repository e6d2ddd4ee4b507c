// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// emailRegex is a deliberately loose shape check: one @ with something on
// either side and a dot in the domain. The confirmation email is the real
// proof of ownership.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Account is a persisted identity. Accounts are created only by
// ProvisioningService.Activate and are never mutated afterwards; the email
// column carries a unique constraint which doubles as the double-activation
// guard.
type Account struct {
	ID           ulid.ULID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity returns the session claim snapshot for this account.
func (a *Account) Identity() SessionIdentity {
	return SessionIdentity{
		AccountID: a.ID,
		Email:     a.Email,
	}
}

// ValidateEmail checks that the address has a plausible shape.
func ValidateEmail(email string) error {
	if email == "" {
		return oops.Code("AUTH_EMAIL_REQUIRED").Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return oops.Code("AUTH_INVALID_EMAIL").
			With("email", email).
			Errorf("invalid email address")
	}
	return nil
}

// AccountRepository manages account persistence.
type AccountRepository interface {
	// Create stores a new account. A unique violation on the email column
	// surfaces as a CodeDuplicateValue error.
	Create(ctx context.Context, account *Account) error

	// GetByEmail retrieves an account by its exact email.
	// Returns ErrNotFound if no account has the given email.
	GetByEmail(ctx context.Context, email string) (*Account, error)
}
