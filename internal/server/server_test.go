package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kundanpawar/portfolio/internal/analytics"
	"github.com/kundanpawar/portfolio/internal/config"
)

type stubPage struct {
	status int
	detail string
}

func (p *stubPage) RenderError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	p.status, p.detail = status, detail
	w.WriteHeader(status)
	fmt.Fprint(w, "recovery page")
}

func newTestServer(t *testing.T, cfg Config, page ErrorPage) *Server {
	t.Helper()
	events := analytics.New(config.AnalyticsConfig{}, cfg.Dev, zap.NewNop())
	t.Cleanup(func() { events.Close() })
	return New(cfg, zap.NewNop(), events, page)
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, Config{Port: 0}, nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, Config{Port: 0, AllowOrigins: []string{"https://example.com"}}, nil)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "https://example.com" {
		t.Errorf("expected CORS Allow-Origin header, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected Allow-Origin %q for disallowed origin", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRecovererRendersPage(t *testing.T) {
	for _, dev := range []bool{false, true} {
		page := &stubPage{}
		srv := newTestServer(t, Config{Dev: dev}, page)
		srv.Router().Get("/boom", func(http.ResponseWriter, *http.Request) { panic("section exploded") })

		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "recovery page", w.Body.String())
		assert.Equal(t, http.StatusInternalServerError, page.status)
		assert.Equal(t, dev, strings.Contains(page.detail, "section exploded"), "dev=%v", dev)
	}
}

func TestRecovererWithoutPage(t *testing.T) {
	srv := newTestServer(t, Config{}, nil)
	srv.Router().Get("/boom", func(http.ResponseWriter, *http.Request) { panic(fmt.Errorf("bad")) })

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
