package contact

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPMailer delivers mail over authenticated SMTP submission. A fresh
// connection is dialed per message; the configured timeout bounds
// connection, handshake and transfer together with the caller's context.
type SMTPMailer struct {
	cfg Config
}

// NewSMTPMailer creates a mailer for cfg.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers one message to the operator mailbox.
func (m *SMTPMailer) Send(ctx context.Context, e Email) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.cfg.To); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	if err := msg.ReplyTo(e.ReplyTo); err != nil {
		return fmt.Errorf("set reply-to: %w", err)
	}
	msg.Subject(e.Subject)
	msg.SetBodyString(mail.TypeTextPlain, e.Body)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(m.cfg.Timeout),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
