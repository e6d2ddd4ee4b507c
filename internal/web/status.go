// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package web

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/accountd/accountd/internal/auth"
	"github.com/accountd/accountd/pkg/errutil"
)

// statusFor maps domain error codes to HTTP statuses. Unknown codes fall
// back to 400 so validation errors surface as client errors.
func statusFor(code string) int {
	switch code {
	case auth.CodeNotFound, auth.CodeInvalidConfirmation, auth.CodeSessionInvalid:
		return http.StatusUnauthorized
	case auth.CodeNotificationFailed:
		return http.StatusBadGateway
	case auth.CodeDuplicateValue, auth.CodeBadID, auth.CodeAlreadySignedIn, auth.CodeGeneric:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

// respondError converts a domain error into a JSON error body. Generic
// storage failures are masked so database detail never reaches clients.
func (s *Server) respondError(c fiber.Ctx, err error) error {
	code := auth.ErrorCode(err)
	status := statusFor(code)

	message := err.Error()
	if code == auth.CodeGeneric {
		errutil.LogError(s.logger, "request failed", err)
		message = "internal error"
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
