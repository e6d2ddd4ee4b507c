// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

// Package web exposes the account-provisioning API over HTTP.
package web

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/samber/oops"

	"github.com/accountd/accountd/internal/auth"
	"github.com/accountd/accountd/internal/observability"
)

// cookieName is the session cookie issued on activation and sign-in.
const cookieName = "auth"

// Server wires the domain services to fiber routes.
type Server struct {
	app          *fiber.App
	provisioning *auth.ProvisioningService
	sessions     *auth.Service
	metrics      *observability.Metrics
	logger       *slog.Logger
	cookieTTL    time.Duration
}

// New creates the HTTP server and registers all routes.
func New(
	provisioning *auth.ProvisioningService,
	sessions *auth.Service,
	metrics *observability.Metrics,
	logger *slog.Logger,
	cookieTTL time.Duration,
) (*Server, error) {
	if provisioning == nil {
		return nil, oops.Errorf("provisioning service is required")
	}
	if sessions == nil {
		return nil, oops.Errorf("auth service is required")
	}
	if metrics == nil {
		return nil, oops.Errorf("metrics are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cookieTTL <= 0 {
		cookieTTL = 24 * time.Hour
	}

	s := &Server{
		app:          fiber.New(),
		provisioning: provisioning,
		sessions:     sessions,
		metrics:      metrics,
		logger:       logger,
		cookieTTL:    cookieTTL,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.app.Use(s.countRequests)

	s.app.Post("/register", s.register)
	s.app.Post("/register/:id", s.activate)
	s.app.Post("/signin", s.signIn)
	s.app.Delete("/signout", s.signOut)
	s.app.Get("/me", s.me)
}

// App returns the underlying fiber app, used by tests to drive requests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on addr until the app is shut down.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// countRequests records per-route request counts after the handler runs.
func (s *Server) countRequests(c fiber.Ctx) error {
	err := c.Next()

	route := c.Route().Path
	status := strconv.Itoa(c.Response().StatusCode())
	s.metrics.RequestsTotal.WithLabelValues(route, status).Inc()
	return err
}
