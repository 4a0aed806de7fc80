package mailer

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"reviewhub/internal/config"
)

// Mailer delivers plain-text mail. Signup treats delivery as fire-and-forget,
// a failed send must never roll back the user row.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer returns an SMTP mailer, or a log-only mailer when SMTP_HOST is
// not configured (development and tests).
func NewMailer(cfg *config.Config, logger *slog.Logger) Mailer {
	if cfg.SMTPHost == "" {
		logger.Warn("SMTP_HOST not set, confirmation emails will only be logged")
		return &logMailer{logger: logger}
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// logMailer writes the message to the log instead of sending it.
type logMailer struct {
	logger *slog.Logger
}

func (m *logMailer) Send(to, subject, body string) error {
	m.logger.Info("confirmation email (log-only delivery)",
		"to", to, "subject", subject, "body", body)
	return nil
}
