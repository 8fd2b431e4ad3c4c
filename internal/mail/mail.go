// Package mail renders contact submissions into emails and hands them to a
// transactional email provider.
package mail

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kundanpawar/portfolio/internal/config"
	"github.com/kundanpawar/portfolio/internal/contact"
)

// ErrNotConfigured is returned when no provider credentials are available.
var ErrNotConfigured = errors.New("email service not configured")

// Message is one outbound email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	// IdempotencyKey lets the provider drop duplicate deliveries.
	IdempotencyKey string
}

// Sender delivers a Message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, m Message) (string, error)
}

// New builds the Sender selected by cfg. It returns ErrNotConfigured when
// the provider needs an API key that is missing.
func New(cfg config.MailConfig, logger *zap.Logger) (Sender, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	switch cfg.Provider {
	case config.MailResend:
		return NewResend(cfg.Endpoint, cfg.APIKey, cfg.Timeout), nil
	case config.MailLog:
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}

// Composer turns contact submissions into messages for a fixed sender and
// recipient.
type Composer struct {
	From string
	To   string
}

// Compose sanitizes the submission and renders it. Replies go to the
// submitter.
func (c Composer) Compose(s contact.Submission) (Message, error) {
	f := contact.Sanitize(s.Fields)
	html, text, err := Render(f)
	if err != nil {
		return Message{}, err
	}
	return Message{
		From:           c.From,
		To:             []string{c.To},
		ReplyTo:        f.Email,
		Subject:        fmt.Sprintf("New Message from %s via Portfolio", f.Name),
		HTML:           html,
		Text:           text,
		IdempotencyKey: s.ID,
	}, nil
}
