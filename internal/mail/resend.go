package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Resend sends mail through the Resend HTTP API.
type Resend struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewResend creates a client posting to endpoint with the given key.
func NewResend(endpoint, apiKey string, timeout time.Duration) *Resend {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Resend{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	ReplyTo string   `json:"reply_to,omitempty"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Send implements Sender.
func (r *Resend) Send(ctx context.Context, m Message) (string, error) {
	payload, err := json.Marshal(resendRequest{
		From:    m.From,
		To:      m.To,
		Subject: m.Subject,
		ReplyTo: m.ReplyTo,
		HTML:    m.HTML,
		Text:    m.Text,
	})
	if err != nil {
		return "", fmt.Errorf("encoding email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	if m.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", m.IdempotencyKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending email: %w", err)
	}
	defer resp.Body.Close()

	var out resendResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil && resp.StatusCode < 300 {
		return "", fmt.Errorf("decoding email response: %w", err)
	}
	if resp.StatusCode >= 300 {
		if out.Message != "" {
			return "", fmt.Errorf("email provider returned status %d: %s: %s", resp.StatusCode, out.Name, out.Message)
		}
		return "", fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}
	return out.ID, nil
}
