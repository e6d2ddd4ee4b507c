// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Accountd Contributors

package mail

import (
	"github.com/samber/oops"
	"gopkg.in/gomail.v2"
)

// SMTP sends mail through an authenticated SMTP relay.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewSMTP creates an SMTP sender.
func NewSMTP(host string, port int, username, password, from string) (*SMTP, error) {
	if host == "" {
		return nil, oops.Code("MAIL_CONFIG_INVALID").Errorf("smtp host is required")
	}
	if from == "" {
		return nil, oops.Code("MAIL_CONFIG_INVALID").Errorf("smtp from address is required")
	}
	return &SMTP{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
	}, nil
}

// Send delivers one message. Each call dials a fresh connection; the relay
// is trusted to queue and retry delivery, this process never does.
func (s *SMTP) Send(to, subject, textBody, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return oops.Code("MAIL_SEND_FAILED").
			With("smtp_host", s.Host).
			Wrap(err)
	}

	return nil
}

// Compile-time interface check.
var _ Sender = (*SMTP)(nil)
