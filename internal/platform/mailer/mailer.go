// Copyright (c) 2026 ByteAndBlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mailer sends plain-text transactional email.

Two senders are provided:

  - SMTP: delivers through a relay using wneessen/go-mail.
  - Log: writes the envelope to the structured log instead of sending. Used in
    development when no relay is configured.

Callers depend on the [Sender] interface so tests can swap in a [Recorder].
*/
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/taibuivan/byteandblog/internal/platform/ctxutil"
)

// Message is a single plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a [Message]. Implementations must honour ctx cancellation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// # SMTP

// SMTPConfig holds the relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender delivers mail through an SMTP relay.
type SMTPSender struct {
	client *mail.Client
	from   string
}

// NewSMTPSender builds a sender for cfg. No connection is opened until the first Send.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	options := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}

	if cfg.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, options...)
	if err != nil {
		return nil, fmt.Errorf("mailer: failed to create smtp client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.From}, nil
}

// Send implements [Sender].
func (sender *SMTPSender) Send(ctx context.Context, msg Message) error {
	message := mail.NewMsg()

	if err := message.From(sender.from); err != nil {
		return fmt.Errorf("mailer: invalid from address: %w", err)
	}
	if err := message.To(msg.To); err != nil {
		return fmt.Errorf("mailer: invalid recipient: %w", err)
	}

	message.Subject(msg.Subject)
	message.SetBodyString(mail.TypeTextPlain, msg.Body)

	if err := sender.client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("mailer: smtp delivery failed: %w", err)
	}

	return nil
}

// # Log

// LogSender records messages in the structured log. The body is never logged
// because it may carry a one-time code.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender returns a sender that only logs envelopes.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send implements [Sender].
func (sender *LogSender) Send(ctx context.Context, msg Message) error {
	logger := sender.logger
	if logger == nil {
		logger = ctxutil.GetLogger(ctx)
	}

	logger.InfoContext(ctx, "mail_suppressed_no_smtp",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}
