// Package mailx sends transactional email through either an SMTP relay or
// the Resend HTTP API, chosen once from configuration.
package mailx

import (
	"context"
	"errors"
	"strings"
)

// ErrNotConfigured is returned by the mailer used when no transport has
// credentials.
var ErrNotConfigured = errors.New("mailx: no email transport configured")

// Message is a rendered email ready to hand to a transport.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers a single message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Config holds every transport's settings. New picks the first usable one.
type Config struct {
	From string

	ResendAPIKey  string
	ResendBaseURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
}

// New returns the Resend mailer when an API key is set, otherwise the SMTP
// mailer when a host and sender are set, otherwise a Disabled mailer.
func New(cfg Config) (Mailer, error) {
	switch {
	case strings.TrimSpace(cfg.ResendAPIKey) != "":
		return NewResend(cfg.ResendAPIKey, cfg.From, cfg.ResendBaseURL)
	case cfg.SMTPHost != "" && cfg.From != "":
		return NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.From), nil
	default:
		return Disabled{}, nil
	}
}

// Disabled rejects every message.
type Disabled struct{}

func (Disabled) Send(context.Context, Message) error { return ErrNotConfigured }
