// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package auth

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// ConfirmationService creates and redeems confirmation tokens.
type ConfirmationService struct {
	confirmations ConfirmationRepository
	settings
}

// NewConfirmationService creates a new ConfirmationService.
func NewConfirmationService(confirmations ConfirmationRepository, opts ...Option) (*ConfirmationService, error) {
	if confirmations == nil {
		return nil, oops.Errorf("confirmations repository is required")
	}
	return &ConfirmationService{
		confirmations: confirmations,
		settings:      newSettings(opts),
	}, nil
}

// Create generates a fresh confirmation for the email and persists it.
// There is deliberately no uniqueness check against the email: a user who
// never received the first mail just registers again and gets a new token.
func (s *ConfirmationService) Create(ctx context.Context, email string) (*Confirmation, error) {
	now := s.now()
	confirmation := &Confirmation{
		ID:        ulid.Make(),
		Email:     email,
		ExpiresAt: now.Add(ConfirmationTTL),
		CreatedAt: now,
	}

	if err := s.confirmations.Create(ctx, confirmation); err != nil {
		return nil, err
	}

	return confirmation, nil
}

// Redeem looks up a confirmation by id and checks its expiry. A missing
// token and an expired token fail identically, so a caller probing token
// ids learns nothing about which ever existed. The row is not marked
// consumed; the accounts email unique constraint is what prevents a second
// successful activation.
func (s *ConfirmationService) Redeem(ctx context.Context, id ulid.ULID) (*Confirmation, error) {
	confirmation, err := s.confirmations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code(CodeInvalidConfirmation).Errorf("invalid or expired confirmation")
		}
		return nil, err
	}

	if confirmation.IsExpiredAt(s.now()) {
		s.logger.Debug("confirmation expired",
			"confirmation_id", id.String(),
			"expired_at", confirmation.ExpiresAt)
		return nil, oops.Code(CodeInvalidConfirmation).Errorf("invalid or expired confirmation")
	}

	return confirmation, nil
}
