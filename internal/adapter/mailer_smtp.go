// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/sosumi-blog/internal/config"
	"github.com/MKhiriev/sosumi-blog/internal/logger"
	"github.com/wneessen/go-mail"
)

const resetSubject = "Reset your password"

// SMTPMailer is a [Mailer] delivering through an SMTP relay. With no host
// configured it only records that a mail would have been sent.
type SMTPMailer struct {
	cfg    config.Mail
	logger *logger.Logger
}

// NewSMTPMailer constructs an SMTPMailer for cfg.
func NewSMTPMailer(cfg config.Mail, log *logger.Logger) *SMTPMailer {
	if cfg.Host == "" {
		log.Warn().Str("func", "NewSMTPMailer").Msg("mail host is not configured, mails will not be delivered")
	}
	return &SMTPMailer{cfg: cfg, logger: log}
}

// SendPasswordReset implements [Mailer].
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, email, resetURL string) error {
	log := logger.FromContext(ctx)

	if m.cfg.Host == "" {
		log.Info().Str("func", "SMTPMailer.SendPasswordReset").Str("to", email).Msg("mail delivery disabled, reset mail dropped")
		return nil
	}

	msg, err := buildResetMessage(m.cfg.From, email, resetURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Err(err).Str("func", "SMTPMailer.SendPasswordReset").Msg("failed to deliver reset mail")
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}

	log.Info().Str("func", "SMTPMailer.SendPasswordReset").Str("to", email).Msg("reset mail sent")
	return nil
}

func buildResetMessage(from, to, resetURL string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(resetSubject)
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"You requested a password reset.\n\n"+
			"Open the link below to choose a new password.\n\n%s\n\n"+
			"If you did not request this, ignore this message.\n", resetURL))

	return msg, nil
}
