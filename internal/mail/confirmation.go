// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/oops"

	"github.com/accountd/accountd/internal/auth"
)

// expiryLayout renders the expiry in a human-readable form for the mail
// body, e.g. "3:04 PM Monday, 2 January, 2006".
const expiryLayout = "3:04 PM Monday, 2 January, 2006"

const confirmationSubject = "Complete your registration"

// ConfirmationMailer builds and sends registration confirmation mails. It
// is the auth.ConfirmationNotifier implementation used in production.
type ConfirmationMailer struct {
	sender    Sender
	domainURL string
}

// NewConfirmationMailer creates a ConfirmationMailer. domainURL is the
// externally reachable base URL embedded in the confirmation link.
func NewConfirmationMailer(sender Sender, domainURL string) (*ConfirmationMailer, error) {
	if sender == nil {
		return nil, oops.Errorf("mail sender is required")
	}
	if domainURL == "" {
		return nil, oops.Code("MAIL_CONFIG_INVALID").Errorf("domain URL is required")
	}
	return &ConfirmationMailer{
		sender:    sender,
		domainURL: strings.TrimRight(domainURL, "/"),
	}, nil
}

// SendConfirmation delivers the confirmation link for a pending
// registration to the address that requested it.
func (m *ConfirmationMailer) SendConfirmation(_ context.Context, confirmation *auth.Confirmation) error {
	link := fmt.Sprintf("%s/register/%s", m.domainURL, confirmation.ID.String())
	expires := confirmation.ExpiresAt.Format(expiryLayout)

	textBody := fmt.Sprintf(
		"Please visit the link below to complete registration:\n\n%s\n\nThis link expires on %s.",
		link, expires,
	)
	htmlBody := fmt.Sprintf(
		`Please click on the link below to complete registration.<br/>
<a href=%q>Complete registration</a><br/>
This link expires on <strong>%s</strong>.`,
		link, expires,
	)

	return m.sender.Send(confirmation.Email, confirmationSubject, textBody, htmlBody)
}

// Compile-time interface check.
var _ auth.ConfirmationNotifier = (*ConfirmationMailer)(nil)
