// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package auth

import (
	"context"
	"errors"

	"github.com/samber/oops"
)

// Service provides sign-in and session inspection.
type Service struct {
	accounts AccountRepository
	hasher   PasswordHasher
	codec    SessionCodec
	settings
}

// NewAuthService creates a new Service.
func NewAuthService(accounts AccountRepository, hasher PasswordHasher, codec SessionCodec, opts ...Option) (*Service, error) {
	if accounts == nil {
		return nil, oops.Errorf("accounts repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if codec == nil {
		return nil, oops.Errorf("session codec is required")
	}
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		codec:    codec,
		settings: newSettings(opts),
	}, nil
}

// dummyPasswordHash is used when an account doesn't exist to prevent timing attacks.
// We still run password verification to make response time consistent.
// This is NOT a real credential - it's a fake hash that will never match any password.
//
//nolint:gosec // G101: This is an intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// SignIn authenticates an email/password pair and returns a session
// identity. A caller that already holds a valid session gets it back
// unchanged. Unknown email, wrong password, and hash verification errors
// all collapse into the same CodeNotFound error so responses cannot be used
// to enumerate accounts; the richer reason goes to the debug log only.
func (s *Service) SignIn(ctx context.Context, current *SessionIdentity, email, password string) (SessionIdentity, error) {
	if current != nil {
		return *current, nil
	}

	account, lookupErr := s.accounts.GetByEmail(ctx, email)

	// Verify against a dummy hash when the account is missing so the
	// response time does not reveal whether the email exists.
	targetHash := dummyPasswordHash
	accountExists := false

	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			return SessionIdentity{}, lookupErr
		}
	} else {
		targetHash = account.PasswordHash
		accountExists = true
	}

	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil || !accountExists || !valid {
		if verifyErr != nil {
			s.logger.Debug("password verification failed", "error", verifyErr)
		}
		return SessionIdentity{}, oops.Code(CodeNotFound).Errorf("user not found")
	}

	return account.Identity(), nil
}

// IssueToken encodes the identity into a session token for the boundary
// layer to place in a cookie.
func (s *Service) IssueToken(identity SessionIdentity) (string, error) {
	return s.codec.Encode(identity)
}

// Me reconstructs the identity from a session token. It is a pure read:
// the identity is trusted as of issuance time and not re-validated against
// the account row. An absent or invalid token yields CodeSessionInvalid.
//
// There is no server-side sign-out counterpart: the boundary layer clears
// the client-held cookie, and a captured token stays valid until its exp
// claim passes.
func (s *Service) Me(token string) (SessionIdentity, error) {
	if token == "" {
		return SessionIdentity{}, oops.Code(CodeSessionInvalid).Errorf("no session token")
	}
	return s.codec.Decode(token)
}
