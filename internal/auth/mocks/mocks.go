// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

// Package mocks provides testify mocks for the auth package interfaces.
package mocks

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/accountd/accountd/internal/auth"
)

// testingT is the subset of *testing.T the mock constructors need.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockAccountRepository mocks auth.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a MockAccountRepository whose
// expectations are asserted on test cleanup.
func NewMockAccountRepository(t testingT) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) Create(ctx context.Context, account *auth.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*auth.Account, error) {
	args := m.Called(ctx, email)
	if a := args.Get(0); a != nil {
		return a.(*auth.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockConfirmationRepository mocks auth.ConfirmationRepository.
type MockConfirmationRepository struct {
	mock.Mock
}

// NewMockConfirmationRepository creates a MockConfirmationRepository whose
// expectations are asserted on test cleanup.
func NewMockConfirmationRepository(t testingT) *MockConfirmationRepository {
	m := &MockConfirmationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockConfirmationRepository) Create(ctx context.Context, confirmation *auth.Confirmation) error {
	args := m.Called(ctx, confirmation)
	return args.Error(0)
}

func (m *MockConfirmationRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.Confirmation, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*auth.Confirmation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockConfirmationRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPasswordHasher mocks auth.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a MockPasswordHasher whose expectations are
// asserted on test cleanup.
func NewMockPasswordHasher(t testingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password, hash string) (bool, error) {
	args := m.Called(password, hash)
	return args.Bool(0), args.Error(1)
}

// MockSessionCodec mocks auth.SessionCodec.
type MockSessionCodec struct {
	mock.Mock
}

// NewMockSessionCodec creates a MockSessionCodec whose expectations are
// asserted on test cleanup.
func NewMockSessionCodec(t testingT) *MockSessionCodec {
	m := &MockSessionCodec{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionCodec) Encode(identity auth.SessionIdentity) (string, error) {
	args := m.Called(identity)
	return args.String(0), args.Error(1)
}

func (m *MockSessionCodec) Decode(token string) (auth.SessionIdentity, error) {
	args := m.Called(token)
	return args.Get(0).(auth.SessionIdentity), args.Error(1)
}

// MockConfirmationNotifier mocks auth.ConfirmationNotifier.
type MockConfirmationNotifier struct {
	mock.Mock
}

// NewMockConfirmationNotifier creates a MockConfirmationNotifier whose
// expectations are asserted on test cleanup.
func NewMockConfirmationNotifier(t testingT) *MockConfirmationNotifier {
	m := &MockConfirmationNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockConfirmationNotifier) SendConfirmation(ctx context.Context, confirmation *auth.Confirmation) error {
	args := m.Called(ctx, confirmation)
	return args.Error(0)
}

// Compile-time interface checks.
var (
	_ auth.AccountRepository      = (*MockAccountRepository)(nil)
	_ auth.ConfirmationRepository = (*MockConfirmationRepository)(nil)
	_ auth.PasswordHasher         = (*MockPasswordHasher)(nil)
	_ auth.SessionCodec           = (*MockSessionCodec)(nil)
	_ auth.ConfirmationNotifier   = (*MockConfirmationNotifier)(nil)
)
