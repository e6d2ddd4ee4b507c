// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package web

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/accountd/accountd/internal/auth"
)

type registerRequest struct {
	Email string `json:"email"`
}

type activateRequest struct {
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register starts provisioning: validates the email, stores a confirmation
// and dispatches the confirmation message.
func (s *Server) register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return badBody(c)
	}

	current := s.currentIdentity(c)
	if err := s.provisioning.Register(c.RequestCtx(), current, req.Email); err != nil {
		s.metrics.RegistrationsTotal.WithLabelValues(auth.ErrorCode(err)).Inc()
		return s.respondError(c, err)
	}

	s.metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "confirmation sent",
	})
}

// activate redeems a confirmation token and creates the account. The new
// identity is signed in immediately via the session cookie.
func (s *Server) activate(c fiber.Ctx) error {
	var req activateRequest
	if err := c.Bind().Body(&req); err != nil {
		return badBody(c)
	}

	current := s.currentIdentity(c)
	identity, err := s.provisioning.Activate(c.RequestCtx(), current, c.Params("id"), req.Password)
	if err != nil {
		s.metrics.ActivationsTotal.WithLabelValues(auth.ErrorCode(err)).Inc()
		return s.respondError(c, err)
	}

	if err := s.issueCookie(c, identity); err != nil {
		s.metrics.ActivationsTotal.WithLabelValues(auth.ErrorCode(err)).Inc()
		return s.respondError(c, err)
	}

	s.metrics.ActivationsTotal.WithLabelValues("ok").Inc()
	return c.Status(http.StatusCreated).JSON(identity)
}

// signIn authenticates credentials and issues the session cookie. A caller
// that already holds a valid session gets its current identity back.
func (s *Server) signIn(c fiber.Ctx) error {
	var req signInRequest
	if err := c.Bind().Body(&req); err != nil {
		return badBody(c)
	}

	current := s.currentIdentity(c)
	identity, err := s.sessions.SignIn(c.RequestCtx(), current, req.Email, req.Password)
	if err != nil {
		s.metrics.SignInsTotal.WithLabelValues(auth.ErrorCode(err)).Inc()
		return s.respondError(c, err)
	}

	if err := s.issueCookie(c, identity); err != nil {
		s.metrics.SignInsTotal.WithLabelValues(auth.ErrorCode(err)).Inc()
		return s.respondError(c, err)
	}

	s.metrics.SignInsTotal.WithLabelValues("ok").Inc()
	return c.Status(http.StatusOK).JSON(identity)
}

// signOut clears the session cookie. Sessions are stateless so this always
// succeeds, whether or not a valid cookie was presented.
func (s *Server) signOut(c fiber.Ctx) error {
	s.clearCookie(c)
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "signed out",
	})
}

// me returns the identity carried by the session cookie.
func (s *Server) me(c fiber.Ctx) error {
	identity, err := s.sessions.Me(c.Cookies(cookieName))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(identity)
}

// currentIdentity decodes the session cookie if present and valid. A missing
// or undecodable cookie means the caller is unauthenticated; the signed-in
// guards only care about valid sessions.
func (s *Server) currentIdentity(c fiber.Ctx) *auth.SessionIdentity {
	token := c.Cookies(cookieName)
	if token == "" {
		return nil
	}
	identity, err := s.sessions.Me(token)
	if err != nil {
		return nil
	}
	return &identity
}

func (s *Server) issueCookie(c fiber.Ctx, identity auth.SessionIdentity) error {
	token, err := s.sessions.IssueToken(identity)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.cookieTTL.Seconds()),
		HTTPOnly: true,
	})
	return nil
}

func (s *Server) clearCookie(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
	})
}

func badBody(c fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid request body",
	})
}
