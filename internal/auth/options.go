// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package auth

import (
	"log/slog"
	"time"
)

// settings holds the injectable ambience shared by all services: the clock
// and the logger. Both default to the obvious thing; tests override the
// clock to exercise expiry and the logger to capture output.
type settings struct {
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a service at construction time.
type Option func(*settings)

// WithClock overrides the time source. Used by tests to simulate expiry.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
