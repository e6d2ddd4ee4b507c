// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountd/accountd/internal/auth"
	"github.com/accountd/accountd/pkg/errutil"
)

func TestAccountRepository_Create(t *testing.T) {
	account := &auth.Account{
		ID:           ulid.Make(),
		Email:        "user@example.com",
		PasswordHash: "$argon2id$hash",
		CreatedAt:    time.Now().UTC(),
	}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantCode  string
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs(account.ID.String(), account.Email, account.PasswordHash, account.CreatedAt).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "duplicate email becomes duplicate value",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs(account.ID.String(), account.Email, account.PasswordHash, account.CreatedAt).
					WillReturnError(&pgconn.PgError{
						Code:           "23505",
						ConstraintName: "accounts_email_key",
					})
			},
			wantCode: auth.CodeDuplicateValue,
		},
		{
			name: "other database error becomes generic",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO accounts`).
					WithArgs(account.ID.String(), account.Email, account.PasswordHash, account.CreatedAt).
					WillReturnError(errors.New("connection refused"))
			},
			wantCode: auth.CodeGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewAccountRepository(mock)
			err = repo.Create(context.Background(), account)

			if tt.wantCode != "" {
				errutil.AssertErrorCode(t, err, tt.wantCode)
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	id := ulid.Make()
	createdAt := time.Now().UTC()

	t.Run("returns account", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(id.String(), "user@example.com", "$argon2id$hash", createdAt)
		mock.ExpectQuery(`SELECT id, email, password_hash, created_at`).
			WithArgs("user@example.com").
			WillReturnRows(rows)

		repo := NewAccountRepository(mock)
		account, err := repo.GetByEmail(context.Background(), "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, id, account.ID)
		assert.Equal(t, "user@example.com", account.Email)
		assert.Equal(t, "$argon2id$hash", account.PasswordHash)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing account wraps ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, created_at`).
			WithArgs("ghost@example.com").
			WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at"}))

		repo := NewAccountRepository(mock)
		_, err = repo.GetByEmail(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, auth.ErrNotFound)
		errutil.AssertErrorCode(t, err, auth.CodeNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt id in storage", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow("not-a-ulid", "user@example.com", "$argon2id$hash", createdAt)
		mock.ExpectQuery(`SELECT id, email, password_hash, created_at`).
			WithArgs("user@example.com").
			WillReturnRows(rows)

		repo := NewAccountRepository(mock)
		_, err = repo.GetByEmail(context.Background(), "user@example.com")
		errutil.AssertErrorCode(t, err, auth.CodeGeneric)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
