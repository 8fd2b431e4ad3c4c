package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   Errors
	}{
		{"valid", validFields, Errors{}},
		{"whitespace only", Fields{Name: "  ", Email: " ", Message: "\n\t"}, Errors{
			FieldName:    "Name is required",
			FieldEmail:   "Email is required",
			FieldMessage: "Message is required",
		}},
		{"too short", Fields{Name: "A", Email: "a@b.co", Message: "Hi there"}, Errors{
			FieldName:    "Name must be at least 2 characters",
			FieldMessage: "Message must be at least 10 characters",
		}},
		{"bad email", Fields{Name: "Al", Email: "al@localhost", Message: "0123456789"}, Errors{
			FieldEmail: "Invalid email address",
		}},
		{"boundary lengths", Fields{Name: "Jo", Email: "JO@Example.ORG", Message: "exactly 10"}, Errors{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.fields))
		})
	}
}

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{"a@b.io", "first.last+tag@sub.domain.com", " x_y%z@host-name.dev "} {
		assert.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{"", "plain", "a@b", "a@b.c", "a b@c.com", "@c.com"} {
		assert.False(t, ValidEmail(bad), bad)
	}
}

func TestValidateRequest(t *testing.T) {
	assert.Empty(t, ValidateRequest(validFields))
	got := ValidateRequest(Fields{Name: "A", Email: "x", Message: "short"})
	assert.Equal(t, map[string][]string{
		FieldName:    {"Name must be at least 2 characters long."},
		FieldEmail:   {"Invalid email address."},
		FieldMessage: {"Message must be at least 10 characters long."},
	}, got)
}

func TestSanitize(t *testing.T) {
	got := Sanitize(Fields{
		Name:    "  <b>Eve</b> onclick=alert(1) ",
		Email:   " Eve@Example.COM ",
		Message: "Hello <script>alert('x')</script>world\n<iframe src=x></iframe>javascript:void(0) <a onmouseover=x>",
	})
	assert.Equal(t, "bEve/b alert(1)", got.Name)
	assert.Equal(t, "eve@example.com", got.Email)
	assert.Equal(t, "Hello world\nvoid(0) <a x>", got.Message)
}

func TestHTTPSubmitter(t *testing.T) {
	var received Fields
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "sub-1", r.Header.Get("X-Request-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Message sent successfully!"}`))
	}))
	defer srv.Close()

	h := NewHTTPSubmitter(srv.URL).WithClient(srv.Client())
	require.NoError(t, h.Submit(context.Background(), Submission{ID: "sub-1", Fields: validFields}))
	assert.Equal(t, validFields, received)
}

func TestHTTPSubmitterEndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"success":false,"error":"Email service not configured."}`))
	}))
	defer srv.Close()

	err := NewHTTPSubmitter(srv.URL).Submit(context.Background(), Submission{Fields: validFields})
	var se *EndpointError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Equal(t, "Email service not configured.", se.Message)
}
