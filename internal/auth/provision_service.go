// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package auth

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// ConfirmationNotifier delivers the confirmation link for a pending
// registration. Implemented by internal/mail.
type ConfirmationNotifier interface {
	SendConfirmation(ctx context.Context, confirmation *Confirmation) error
}

// ProvisioningService orchestrates account creation: a registration request
// produces a confirmation token delivered by email, and redeeming that
// token with a password produces an account plus a session identity for
// immediate sign-in.
type ProvisioningService struct {
	confirmations *ConfirmationService
	accounts      AccountRepository
	hasher        PasswordHasher
	notifier      ConfirmationNotifier
	settings
}

// NewProvisioningService creates a new ProvisioningService.
func NewProvisioningService(
	confirmations *ConfirmationService,
	accounts AccountRepository,
	hasher PasswordHasher,
	notifier ConfirmationNotifier,
	opts ...Option,
) (*ProvisioningService, error) {
	if confirmations == nil {
		return nil, oops.Errorf("confirmation service is required")
	}
	if accounts == nil {
		return nil, oops.Errorf("accounts repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if notifier == nil {
		return nil, oops.Errorf("confirmation notifier is required")
	}
	return &ProvisioningService{
		confirmations: confirmations,
		accounts:      accounts,
		hasher:        hasher,
		notifier:      notifier,
		settings:      newSettings(opts),
	}, nil
}

// Register creates a confirmation token for the email and dispatches the
// confirmation mail. A signed-in caller is rejected. When dispatch fails the
// confirmation row is intentionally left behind: registering again simply
// issues a fresh token, it never resends an old one.
func (s *ProvisioningService) Register(ctx context.Context, current *SessionIdentity, email string) error {
	if current != nil {
		return oops.Code(CodeAlreadySignedIn).Errorf("already signed in")
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}

	confirmation, err := s.confirmations.Create(ctx, email)
	if err != nil {
		return err
	}

	if err := s.notifier.SendConfirmation(ctx, confirmation); err != nil {
		s.logger.Error("confirmation mail dispatch failed",
			"confirmation_id", confirmation.ID.String(),
			"error", err)
		return oops.Code(CodeNotificationFailed).
			With("confirmation_id", confirmation.ID.String()).
			Errorf("could not send confirmation email")
	}

	s.logger.Info("confirmation sent",
		"confirmation_id", confirmation.ID.String(),
		"expires_at", confirmation.ExpiresAt)
	return nil
}

// Activate redeems a confirmation token and creates the account with the
// supplied password, returning the session identity for auto-login. No
// token is ever marked spent: the unique constraint on the account email is
// the mechanism that makes a second activation fail, with CodeDuplicateValue,
// even under concurrent attempts.
func (s *ProvisioningService) Activate(ctx context.Context, current *SessionIdentity, tokenID, password string) (SessionIdentity, error) {
	if current != nil {
		return SessionIdentity{}, oops.Code(CodeAlreadySignedIn).Errorf("already signed in")
	}

	id, err := ulid.Parse(tokenID)
	if err != nil {
		return SessionIdentity{}, oops.Code(CodeBadID).Errorf("malformed confirmation id")
	}

	confirmation, err := s.confirmations.Redeem(ctx, id)
	if err != nil {
		return SessionIdentity{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return SessionIdentity{}, err
	}

	account := &Account{
		ID:           ulid.Make(),
		Email:        confirmation.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return SessionIdentity{}, err
	}

	s.logger.Info("account activated",
		"account_id", account.ID.String(),
		"confirmation_id", confirmation.ID.String())
	return account.Identity(), nil
}
