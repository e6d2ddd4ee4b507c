// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package auth

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Error codes form the closed taxonomy consumed by the boundary layer.
// Every error leaving this package carries exactly one of these codes.
const (
	// CodeDuplicateValue marks a storage unique-constraint violation,
	// most notably two activations for the same email.
	CodeDuplicateValue = "AUTH_DUPLICATE_VALUE"

	// CodeBadID marks a malformed identifier, e.g. an unparsable
	// confirmation token.
	CodeBadID = "AUTH_BAD_ID"

	// CodeNotFound is the unified sign-in failure: unknown email, wrong
	// password, and verification errors are deliberately indistinguishable.
	CodeNotFound = "AUTH_NOT_FOUND"

	// CodeInvalidConfirmation covers both missing and expired confirmation
	// tokens; callers cannot tell which occurred.
	CodeInvalidConfirmation = "AUTH_INVALID_CONFIRMATION"

	// CodeAlreadySignedIn rejects register/activate calls from a caller
	// that already holds a valid session.
	CodeAlreadySignedIn = "AUTH_ALREADY_SIGNED_IN"

	// CodeNotificationFailed marks a confirmation email that could not be
	// dispatched. The confirmation row is kept so registering again works.
	CodeNotificationFailed = "AUTH_NOTIFICATION_FAILED"

	// CodeSessionInvalid marks an absent, tampered, or expired session
	// token.
	CodeSessionInvalid = "AUTH_SESSION_INVALID"

	// CodeGeneric is the catch-all for unclassified storage failures.
	// Raw storage detail never reaches callers.
	CodeGeneric = "AUTH_GENERIC"
)

// TranslateStorageError maps a storage-layer failure into the domain
// taxonomy. Unique-constraint violations become CodeDuplicateValue with the
// constraint detail; every other database error degrades to CodeGeneric so
// schema internals are not leaked to callers. This translation happens once,
// at the repository boundary - services above never see raw pgx errors.
func TranslateStorageError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgerrcode.UniqueViolation {
			detail := pgErr.Detail
			if detail == "" {
				detail = pgErr.Message
			}
			return oops.Code(CodeDuplicateValue).
				With("constraint", pgErr.ConstraintName).
				Errorf("%s", detail)
		}
		return oops.Code(CodeGeneric).
			With("pg_code", pgErr.Code).
			Errorf("database error")
	}
	return oops.Code(CodeGeneric).Wrap(err)
}

// ErrorCode returns the taxonomy code carried by err. Errors that carry no
// code report CodeGeneric so the boundary never exposes raw messages.
func ErrorCode(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		if code, ok := oopsErr.Code().(string); ok && code != "" {
			return code
		}
	}
	return CodeGeneric
}
