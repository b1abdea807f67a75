// Package mail provides the outbound email side channel. Sending is always
// best-effort: a misconfigured or unreachable transport yields a skipped or
// failed result, never an error that could fail the triggering mutation.
package mail

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/helpdeskpro/helpdesk-service/internal/config"
)

// SendResult reports the outcome of a single send attempt.
type SendResult struct {
	Sent      bool
	MessageID string
	Reason    string
}

// Mailer sends a single HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) SendResult
}

// SMTPMailer delivers mail over SMTP via gomail.
type SMTPMailer struct {
	dialer     *gomail.Dialer
	from       string
	configured bool
	logger     *zap.Logger
}

// NewSMTPMailer builds a mailer from config. When SMTP credentials are
// absent the mailer stays callable and reports every send as skipped.
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	configured := cfg.Username != "" && cfg.Password != ""
	if !configured {
		logger.Warn("smtp credentials not configured; emails will be skipped")
	}
	return &SMTPMailer{
		dialer:     gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:       cfg.From,
		configured: configured,
		logger:     logger,
	}
}

// Send delivers one message. Failures are logged and reported in the
// result; they are never propagated as errors.
func (m *SMTPMailer) Send(_ context.Context, to, subject, html string) SendResult {
	if !m.configured {
		m.logger.Warn("smtp not configured; email not sent",
			zap.String("to", to), zap.String("subject", subject))
		return SendResult{Sent: false, Reason: "smtp not configured"}
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("failed to send email",
			zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return SendResult{Sent: false, Reason: err.Error()}
	}

	id := uuid.NewString()
	m.logger.Debug("email sent",
		zap.String("to", to), zap.String("subject", subject), zap.String("message_id", id))
	return SendResult{Sent: true, MessageID: id}
}
