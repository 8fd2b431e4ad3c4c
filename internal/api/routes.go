// Package api serves the JSON endpoints used by the page.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kundanpawar/portfolio/internal/analytics"
	"github.com/kundanpawar/portfolio/internal/contact"
	"github.com/kundanpawar/portfolio/internal/scrollspy"
)

// Response messages of the contact endpoint.
const (
	msgSent          = "Message sent successfully!"
	msgInvalid       = "Invalid input."
	msgNotConfigured = "Email service not configured."
	msgSendFailed    = "Failed to send email."
	msgUnexpected    = "An unexpected error occurred."
)

const (
	maxBodyBytes = 64 << 10
	maxInFlight  = 32

	// maxErrorLabel bounds client error messages, in bytes.
	maxErrorLabel = 200
)

// response is the envelope of every API reply.
type response struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Error   string              `json:"error,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
	Data    any                 `json:"data,omitempty"`
}

// RegisterRoutes mounts the API under /api on the given router.
func RegisterRoutes(r chi.Router, d *Delivery, events *analytics.Service, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Throttle(maxInFlight))
		r.Post("/contact", handleContact(d, events, logger))
		r.Post("/events", handleEvents(events))
	})
}

func handleContact(d *Delivery, events *analytics.Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Configured() {
			writeJSON(w, http.StatusServiceUnavailable, response{Error: msgNotConfigured})
			return
		}

		f, details, err := decodeContact(w, r)
		if err != nil {
			logger.Warn("contact: decoding request", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, response{Error: msgUnexpected})
			return
		}
		if details != nil {
			writeJSON(w, http.StatusBadRequest, response{Error: msgInvalid, Details: details})
			return
		}

		sub := contact.Submission{ID: requestID(r), Fields: f}
		id, err := d.Deliver(r.Context(), sub)
		if err != nil {
			logger.Error("contact: sending email", zap.String("submission_id", sub.ID), zap.Error(err))
			events.TrackError(err, zap.String("route", "/api/contact"))
			writeJSON(w, http.StatusInternalServerError, response{Error: msgSendFailed})
			return
		}

		events.TrackContact("api")
		writeJSON(w, http.StatusOK, response{
			Success: true,
			Message: msgSent,
			Data:    map[string]string{"id": id},
		})
	}
}

// decodeContact reads the request body. Well-formed JSON with wrong-typed
// fields is a validation failure, not an error: the offending field is
// reported in details and the rest are validated as usual.
func decodeContact(w http.ResponseWriter, r *http.Request) (contact.Fields, map[string][]string, error) {
	var f contact.Fields
	var typeErr *json.UnmarshalTypeError
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&f)
	if err != nil && !errors.As(err, &typeErr) {
		return f, nil, err
	}
	if typeErr != nil && typeErr.Field == "" {
		// Not an object at all.
		return f, map[string][]string{}, nil
	}
	details := contact.ValidateRequest(f)
	if typeErr != nil {
		details[typeErr.Field] = []string{fmt.Sprintf("Expected %s, received %s", typeErr.Type, typeErr.Value)}
	}
	if len(details) == 0 {
		return f, nil, nil
	}
	return f, details, nil
}

// requestID reuses a client-supplied id so retries of the same submission
// share an idempotency key.
func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-Id"); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	return uuid.NewString()
}

// eventRequest is a beacon sent by the page script.
type eventRequest struct {
	Type  string  `json:"type"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

var (
	errUnknownEvent = errors.New("unknown event type")
	errUnknownLabel = errors.New("unknown event label")
)

// Beacon labels become metric labels, so each type accepts a fixed set.
var (
	vitals          = set("LCP", "FID", "CLS", "INP", "FCP", "TTFB")
	contactMethods  = set("form", "email", "linkedin", "github", "twitter", "website")
	downloadKinds   = set("resume")
	sectionsAllowed = set(scrollspy.DefaultSections...)
)

func set(values ...string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

func handleEvents(events *analytics.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, response{Error: "invalid request body"})
			return
		}
		if err := record(events, req); err != nil {
			writeJSON(w, http.StatusBadRequest, response{Error: err.Error()})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func record(events *analytics.Service, req eventRequest) error {
	label := strings.TrimSpace(req.Label)
	allowed := func(m map[string]bool) error {
		if !m[label] {
			return fmt.Errorf("%w: %q", errUnknownLabel, label)
		}
		return nil
	}
	switch req.Type {
	case analytics.ActionNavigate:
		if err := allowed(sectionsAllowed); err != nil {
			return err
		}
		events.TrackNavigation(label)
	case analytics.ActionContact:
		if err := allowed(contactMethods); err != nil {
			return err
		}
		events.TrackContact(label)
	case analytics.ActionDownload:
		if err := allowed(downloadKinds); err != nil {
			return err
		}
		events.TrackDownload(label)
	case analytics.ActionPerformance:
		if err := allowed(vitals); err != nil {
			return err
		}
		events.TrackPerformance(analytics.Metric{Name: label, Value: req.Value, Unit: req.Unit})
	case analytics.ActionError:
		events.TrackError(errors.New(truncate(label, maxErrorLabel)), zap.String("source", "client"))
	default:
		return fmt.Errorf("%w: %q", errUnknownEvent, req.Type)
	}
	return nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
