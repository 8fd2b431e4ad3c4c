package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kundanpawar/portfolio/internal/analytics"
	"github.com/kundanpawar/portfolio/internal/config"
	"github.com/kundanpawar/portfolio/internal/contact"
	"github.com/kundanpawar/portfolio/internal/mail"
)

type fakeSender struct {
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m mail.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, m)
	return "email_1", nil
}

func setup(t *testing.T, sender mail.Sender) (http.Handler, *analytics.Service) {
	t.Helper()
	events := analytics.New(config.AnalyticsConfig{}, false, zap.NewNop())
	t.Cleanup(func() { events.Close() })
	d := NewDelivery(sender, mail.Composer{From: "site@example.com", To: "owner@example.com"}, zap.NewNop())
	r := chi.NewRouter()
	RegisterRoutes(r, d, events, zap.NewNop())
	return r, events
}

func post(t *testing.T, h http.Handler, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

const validBody = `{"name":"John Doe","email":"test@example.com","message":"Hello, I'd like to chat."}`

func TestContactSuccess(t *testing.T) {
	sender := &fakeSender{}
	h, events := setup(t, sender)

	w, out := post(t, h, "/api/contact", validBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Message sent successfully!", out["message"])
	assert.Equal(t, map[string]any{"id": "email_1"}, out["data"])

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"owner@example.com"}, msg.To)
	assert.Equal(t, "test@example.com", msg.ReplyTo)
	assert.Equal(t, "New Message from John Doe via Portfolio", msg.Subject)
	assert.NotEmpty(t, msg.IdempotencyKey)

	n, err := testutil.GatherAndCount(events.Registry(), "portfolio_contact_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestContactReusesRequestID(t *testing.T) {
	sender := &fakeSender{}
	h, _ := setup(t, sender)

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(validBody))
	req.Header.Set("X-Request-Id", "6f1c2f7e-7d7e-4c55-9a53-0b0c5f3c2d11")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "6f1c2f7e-7d7e-4c55-9a53-0b0c5f3c2d11", sender.sent[0].IdempotencyKey)
}

func TestContactStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		sender     mail.Sender
		body       string
		wantStatus int
		wantError  string
	}{
		{"not configured", nil, validBody, http.StatusServiceUnavailable, "Email service not configured."},
		{"malformed json", &fakeSender{}, `{"name":`, http.StatusInternalServerError, "An unexpected error occurred."},
		{"provider failure", &fakeSender{err: errors.New("rate limited")}, validBody, http.StatusInternalServerError, "Failed to send email."},
		{"invalid input", &fakeSender{}, `{"name":"J","email":"invalid-email","message":"hi"}`, http.StatusBadRequest, "Invalid input."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setup(t, tt.sender)
			w, out := post(t, h, "/api/contact", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, false, out["success"])
			assert.Equal(t, tt.wantError, out["error"])
		})
	}
}

func TestContactValidationDetails(t *testing.T) {
	sender := &fakeSender{}
	h, _ := setup(t, sender)

	w, out := post(t, h, "/api/contact", `{"name":"J","email":"invalid-email","message":"hi"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{
		"name":    []any{"Name must be at least 2 characters long."},
		"email":   []any{"Invalid email address."},
		"message": []any{"Message must be at least 10 characters long."},
	}, out["details"])
	assert.Empty(t, sender.sent, "invalid input never reaches the provider")

	w, out = post(t, h, "/api/contact", `{"name":123,"email":"test@example.com","message":"Hello there, friend."}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid input.", out["error"])
	assert.Equal(t, map[string]any{
		"name": []any{"Expected string, received number"},
	}, out["details"])

	w, out = post(t, h, "/api/contact", `["not","an","object"]`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid input.", out["error"])

	w, _ = post(t, h, "/api/contact", `{"name":`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, sender.sent)
}

func TestDeliveryAsSubmitter(t *testing.T) {
	sender := &fakeSender{}
	d := NewDelivery(sender, mail.Composer{To: "owner@example.com"}, nil)
	err := d.Submit(context.Background(), contact.Submission{ID: "x", Fields: contact.Fields{
		Name: "Jane", Email: "jane@example.com", Message: "Let us build something.",
	}})
	require.NoError(t, err)
	assert.Len(t, sender.sent, 1)

	err = NewDelivery(nil, mail.Composer{}, nil).Submit(context.Background(), contact.Submission{})
	assert.ErrorIs(t, err, mail.ErrNotConfigured)
}

func TestEvents(t *testing.T) {
	h, events := setup(t, &fakeSender{})

	for _, body := range []string{
		`{"type":"navigate","label":"projects"}`,
		`{"type":"download","label":"resume"}`,
		`{"type":"performance","label":"LCP","value":1830.2,"unit":"ms"}`,
		`{"type":"error","label":"TypeError: x is undefined"}`,
	} {
		w, _ := post(t, h, "/api/events", body)
		assert.Equal(t, http.StatusNoContent, w.Code, body)
	}

	for _, body := range []string{
		`{"type":"navigate","label":"/etc/passwd"}`,
		`{"type":"pageview","label":"/"}`,
		`not json`,
	} {
		w, _ := post(t, h, "/api/events", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	n, err := testutil.GatherAndCount(events.Registry(), "portfolio_navigation_total", "portfolio_downloads_total", "portfolio_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	long := strings.Repeat("é", 150) // 300 bytes
	got := truncate(long, maxErrorLabel)
	assert.True(t, utf8.ValidString(got))
	assert.Len(t, got, 200)
	assert.Equal(t, "ab", truncate("abé", 3))
	assert.Equal(t, "short", truncate("short", maxErrorLabel))
}
