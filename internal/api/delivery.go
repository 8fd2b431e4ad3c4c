package api

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kundanpawar/portfolio/internal/contact"
	"github.com/kundanpawar/portfolio/internal/mail"
)

// Delivery turns contact submissions into emails. It serves both the JSON
// endpoint and the in-process form controller.
type Delivery struct {
	sender   mail.Sender
	composer mail.Composer
	logger   *zap.Logger
}

// NewDelivery creates a Delivery. A nil sender means the email service is
// not configured and every delivery fails with mail.ErrNotConfigured.
func NewDelivery(sender mail.Sender, composer mail.Composer, logger *zap.Logger) *Delivery {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Delivery{sender: sender, composer: composer, logger: logger}
}

// Configured reports whether a sender is available.
func (d *Delivery) Configured() bool { return d.sender != nil }

// Deliver sends the submission and returns the provider's message id.
func (d *Delivery) Deliver(ctx context.Context, s contact.Submission) (string, error) {
	if d.sender == nil {
		return "", mail.ErrNotConfigured
	}
	msg, err := d.composer.Compose(s)
	if err != nil {
		return "", fmt.Errorf("composing email: %w", err)
	}
	id, err := d.sender.Send(ctx, msg)
	if err != nil {
		return "", err
	}
	d.logger.Info("contact email sent", zap.String("submission_id", s.ID), zap.String("email_id", id))
	return id, nil
}

// Submit implements contact.Submitter.
func (d *Delivery) Submit(ctx context.Context, s contact.Submission) error {
	_, err := d.Deliver(ctx, s)
	return err
}

var _ contact.Submitter = (*Delivery)(nil)
