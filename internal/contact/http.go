package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPSubmitter posts submissions as JSON to the contact endpoint.
type HTTPSubmitter struct {
	url    string
	client *http.Client
}

// NewHTTPSubmitter creates a submitter for the given endpoint URL.
func NewHTTPSubmitter(url string) *HTTPSubmitter {
	return &HTTPSubmitter{
		url: url,
		client: &http.Client{
			Timeout: DefaultSubmitTimeout,
		},
	}
}

// WithClient replaces the HTTP client; used by tests.
func (h *HTTPSubmitter) WithClient(c *http.Client) *HTTPSubmitter {
	h.client = c
	return h
}

// Submit implements Submitter. Any non-2xx response is an error carrying
// the endpoint's error string when it sent one.
func (h *HTTPSubmitter) Submit(ctx context.Context, s Submission) error {
	payload, err := json.Marshal(s.Fields)
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating contact request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", s.ID)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending contact request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)
	return &EndpointError{Code: resp.StatusCode, Message: body.Error}
}

// EndpointError is a non-2xx response from the contact endpoint.
type EndpointError struct {
	Code    int
	Message string
}

func (e *EndpointError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contact endpoint returned status %d", e.Code)
	}
	return fmt.Sprintf("contact endpoint returned status %d: %s", e.Code, e.Message)
}

var _ Submitter = (*HTTPSubmitter)(nil)
