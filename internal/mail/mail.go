// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

// Package mail handles outbound email delivery.
package mail

import (
	"github.com/samber/oops"
)

// Sender delivers a single message with both plain-text and HTML bodies.
type Sender interface {
	Send(to, subject, textBody, htmlBody string) error
}

// ErrNotConfigured is returned by NoMail for every send attempt.
var ErrNotConfigured = oops.Code("MAIL_NOT_CONFIGURED").Errorf("no mail transport configured")

// NoMail is the null Sender used when no SMTP transport is configured.
// Registration still records the confirmation but reports the dispatch
// failure, so a deployment without SMTP is visible instead of silently
// dropping mail.
type NoMail struct{}

// Send always fails with ErrNotConfigured.
func (NoMail) Send(_, _, _, _ string) error {
	return ErrNotConfigured
}

// Compile-time interface check.
var _ Sender = NoMail{}
