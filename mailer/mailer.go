// Package mailer sends outbound mail over SMTP.
package mailer

import (
	"fmt"

	"github.com/fahadhasan-x/AgriZoo/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends messages through one SMTP account.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New creates a Mailer from SMTP configuration.
func New(cfg *config.MailConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers an HTML message.
func (m *Mailer) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	return m.dialer.DialAndSend(msg)
}

// SendPasswordReset mails the password-reset link.
func (m *Mailer) SendPasswordReset(to, resetURL string) error {
	body := fmt.Sprintf(`
		<h1>Password Reset Request</h1>
		<p>You requested to reset your password. Click the link below to set a new password:</p>
		<a href="%s">Reset Password</a>
		<p>This link will expire in 1 hour.</p>
		<p>If you didn't request this, please ignore this email.</p>
	`, resetURL)
	return m.Send(to, "Password Reset Request - AgriZoo", body)
}
