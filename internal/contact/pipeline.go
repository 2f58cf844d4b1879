// Package contact implements the contact-form submission pipeline:
// honeypot filtering, field validation and best-effort mail delivery.
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spinfactor/spinbot/internal/domain"
)

// Config holds the outbound channel settings. Host, Username and
// Password come from deployment configuration; missing values surface as
// a domain.ConfigError at submit time, not at startup, so the rest of
// the API stays available on a partially configured deployment.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
	Timeout  time.Duration
}

// missing returns the names of required settings that are absent.
func (c Config) missing() []string {
	var names []string
	if c.Host == "" {
		names = append(names, "SMTP_HOST")
	}
	if c.Username == "" {
		names = append(names, "SMTP_USER")
	}
	if c.Password == "" {
		names = append(names, "SMTP_PASS")
	}
	return names
}

// Email is one outbound message handed to the Mailer.
type Email struct {
	ReplyTo string
	Subject string
	Body    string
}

// Mailer delivers a single message. Implementations must bound their
// own connection and transfer time via the context or internal timeouts.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// Pipeline validates and delivers contact submissions. Delivery is
// attempted exactly once per call; there is no queue and no retry.
type Pipeline struct {
	cfg    Config
	mailer Mailer
}

// NewPipeline creates a pipeline delivering through mailer.
func NewPipeline(cfg Config, mailer Mailer) *Pipeline {
	return &Pipeline{cfg: cfg, mailer: mailer}
}

// Submit runs the submission through the pipeline gates. A filled
// honeypot returns nil without delivery, indistinguishable from success
// to the caller. Validation failures return domain.ErrMissingFields,
// absent deployment settings a *domain.ConfigError, and transport
// failures wrap domain.ErrDeliveryFailed.
func (p *Pipeline) Submit(ctx context.Context, sub domain.ContactSubmission) error {
	sub.Normalize()

	if sub.IsSpam() {
		slog.Info("Contact submission dropped by honeypot")
		return nil
	}

	if sub.Email == "" || sub.Message == "" {
		return domain.ErrMissingFields
	}

	if names := p.cfg.missing(); len(names) > 0 {
		return &domain.ConfigError{Missing: names}
	}

	ref := uuid.New().String()[:8]
	msg := Email{
		ReplyTo: sub.Email,
		Subject: fmt.Sprintf("Nuovo contatto dal sito [%s]", ref),
		Body:    formatBody(sub),
	}

	if err := p.mailer.Send(ctx, msg); err != nil {
		slog.Error("Contact delivery failed", "ref", ref, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	slog.Info("Contact submission delivered", "ref", ref)
	return nil
}

func formatBody(sub domain.ContactSubmission) string {
	name := sub.Name
	if name == "" {
		name = "(non indicato)"
	}
	return fmt.Sprintf("Nome: %s\nEmail: %s\n\n%s\n", name, sub.Email, sub.Message)
}
