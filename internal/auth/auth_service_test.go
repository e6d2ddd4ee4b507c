// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/accountd/accountd/internal/auth"
	"github.com/accountd/accountd/internal/auth/mocks"
	"github.com/accountd/accountd/pkg/errutil"
)

type authFixture struct {
	accounts *mocks.MockAccountRepository
	hasher   *mocks.MockPasswordHasher
	codec    *mocks.MockSessionCodec
	svc      *auth.Service
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		accounts: mocks.NewMockAccountRepository(t),
		hasher:   mocks.NewMockPasswordHasher(t),
		codec:    mocks.NewMockSessionCodec(t),
	}

	var err error
	f.svc, err = auth.NewAuthService(f.accounts, f.hasher, f.codec)
	require.NoError(t, err)
	return f
}

func TestNewAuthService_NilDependencies(t *testing.T) {
	tests := []struct {
		name        string
		accounts    auth.AccountRepository
		hasher      auth.PasswordHasher
		codec       auth.SessionCodec
		expectError string
	}{
		{
			name:        "nil accounts repository",
			hasher:      mocks.NewMockPasswordHasher(t),
			codec:       mocks.NewMockSessionCodec(t),
			expectError: "accounts repository is required",
		},
		{
			name:        "nil password hasher",
			accounts:    mocks.NewMockAccountRepository(t),
			codec:       mocks.NewMockSessionCodec(t),
			expectError: "password hasher is required",
		},
		{
			name:        "nil session codec",
			accounts:    mocks.NewMockAccountRepository(t),
			hasher:      mocks.NewMockPasswordHasher(t),
			expectError: "session codec is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := auth.NewAuthService(tt.accounts, tt.hasher, tt.codec)
			require.Error(t, err)
			assert.Nil(t, svc)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestService_SignIn(t *testing.T) {
	ctx := context.Background()

	account := &auth.Account{
		ID:           ulid.Make(),
		Email:        "user@example.com",
		PasswordHash: "$argon2id$stored",
		CreatedAt:    time.Now(),
	}

	t.Run("valid credentials", func(t *testing.T) {
		f := newAuthFixture(t)

		f.accounts.On("GetByEmail", ctx, "user@example.com").Return(account, nil)
		f.hasher.On("Verify", "hunter22", "$argon2id$stored").Return(true, nil)

		identity, err := f.svc.SignIn(ctx, nil, "user@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, account.ID, identity.AccountID)
		assert.Equal(t, "user@example.com", identity.Email)
	})

	t.Run("signed-in caller gets identity back unchanged", func(t *testing.T) {
		f := newAuthFixture(t)

		current := auth.SessionIdentity{AccountID: ulid.Make(), Email: "user@example.com"}
		identity, err := f.svc.SignIn(ctx, &current, "other@example.com", "whatever")
		require.NoError(t, err)
		assert.Equal(t, current, identity)
	})

	t.Run("wrong password fails with user not found", func(t *testing.T) {
		f := newAuthFixture(t)

		f.accounts.On("GetByEmail", ctx, "user@example.com").Return(account, nil)
		f.hasher.On("Verify", "wrong", "$argon2id$stored").Return(false, nil)

		_, err := f.svc.SignIn(ctx, nil, "user@example.com", "wrong")
		errutil.AssertErrorCode(t, err, auth.CodeNotFound)
	})

	t.Run("unknown email still runs verification", func(t *testing.T) {
		f := newAuthFixture(t)

		f.accounts.On("GetByEmail", ctx, "ghost@example.com").Return(nil, auth.ErrNotFound)
		// The dummy hash is verified so the response time matches the
		// wrong-password path.
		f.hasher.On("Verify", "hunter22", mock.AnythingOfType("string")).Return(false, nil)

		_, err := f.svc.SignIn(ctx, nil, "ghost@example.com", "hunter22")
		errutil.AssertErrorCode(t, err, auth.CodeNotFound)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		f := newAuthFixture(t)

		f.accounts.On("GetByEmail", ctx, "user@example.com").Return(account, nil)
		f.accounts.On("GetByEmail", ctx, "ghost@example.com").Return(nil, auth.ErrNotFound)
		f.hasher.On("Verify", mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(false, nil)

		_, wrongPassword := f.svc.SignIn(ctx, nil, "user@example.com", "wrong")
		_, unknownEmail := f.svc.SignIn(ctx, nil, "ghost@example.com", "wrong")
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	})

	t.Run("verification error collapses into user not found", func(t *testing.T) {
		f := newAuthFixture(t)

		corrupt := &auth.Account{ID: account.ID, Email: account.Email, PasswordHash: "garbage"}
		f.accounts.On("GetByEmail", ctx, "user@example.com").Return(corrupt, nil)
		f.hasher.On("Verify", "hunter22", "garbage").Return(false, assert.AnError)

		_, err := f.svc.SignIn(ctx, nil, "user@example.com", "hunter22")
		errutil.AssertErrorCode(t, err, auth.CodeNotFound)
	})

	t.Run("storage failure passes through", func(t *testing.T) {
		f := newAuthFixture(t)

		generic := auth.TranslateStorageError(assert.AnError)
		f.accounts.On("GetByEmail", ctx, "user@example.com").Return(nil, generic)

		_, err := f.svc.SignIn(ctx, nil, "user@example.com", "hunter22")
		errutil.AssertErrorCode(t, err, auth.CodeGeneric)
	})
}

func TestService_Me(t *testing.T) {
	t.Run("decodes token", func(t *testing.T) {
		f := newAuthFixture(t)

		identity := auth.SessionIdentity{AccountID: ulid.Make(), Email: "user@example.com"}
		f.codec.On("Decode", "sometoken").Return(identity, nil)

		got, err := f.svc.Me("sometoken")
		require.NoError(t, err)
		assert.Equal(t, identity, got)
	})

	t.Run("empty token is invalid session", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.svc.Me("")
		errutil.AssertErrorCode(t, err, auth.CodeSessionInvalid)
	})

	t.Run("codec failure passes through", func(t *testing.T) {
		f := newAuthFixture(t)

		invalid := oops.Code(auth.CodeSessionInvalid).Errorf("invalid session token")
		f.codec.On("Decode", "tampered").Return(auth.SessionIdentity{}, invalid)

		_, err := f.svc.Me("tampered")
		errutil.AssertErrorCode(t, err, auth.CodeSessionInvalid)
	})
}

func TestService_IssueToken(t *testing.T) {
	f := newAuthFixture(t)

	identity := auth.SessionIdentity{AccountID: ulid.Make(), Email: "user@example.com"}
	f.codec.On("Encode", identity).Return("signed-token", nil)

	token, err := f.svc.IssueToken(identity)
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
}
