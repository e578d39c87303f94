// Package email provides an SMTP-based mailer for reservation notifications.
package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/seatwise/seatwise/internal/config"
)

// Mailer sends emails via SMTP.
type Mailer struct {
	cfg config.SMTP
}

// NewMailer creates a new SMTP mailer.
func NewMailer(cfg config.SMTP) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send sends one HTML email.
func (m *Mailer) Send(_ context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		m.cfg.From, to, subject, body)

	var auth smtp.Auth
	if m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)
	}

	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}
