package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field names as used in forms and JSON bodies.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

const (
	minNameLen    = 2
	minMessageLen = 10
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// Fields are the user-entered values of the contact form.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Get returns the value of a named field.
func (f Fields) Get(field string) (string, bool) {
	switch field {
	case FieldName:
		return f.Name, true
	case FieldEmail:
		return f.Email, true
	case FieldMessage:
		return f.Message, true
	}
	return "", false
}

// Errors maps a field name to a human-readable message.
type Errors map[string]string

// ValidEmail reports whether s looks like a deliverable address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// Validate applies the form rules and returns one message per violated field.
func Validate(f Fields) Errors {
	errs := Errors{}
	for _, field := range []string{FieldName, FieldEmail, FieldMessage} {
		v, _ := f.Get(field)
		if msg := validateField(field, v); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

func validateField(field, value string) string {
	v := strings.TrimSpace(value)
	switch field {
	case FieldName:
		if v == "" {
			return "Name is required"
		}
		if utf8.RuneCountInString(v) < minNameLen {
			return "Name must be at least 2 characters"
		}
	case FieldEmail:
		if v == "" {
			return "Email is required"
		}
		if !ValidEmail(v) {
			return "Invalid email address"
		}
	case FieldMessage:
		if v == "" {
			return "Message is required"
		}
		if utf8.RuneCountInString(v) < minMessageLen {
			return "Message must be at least 10 characters"
		}
	}
	return ""
}

// ValidateRequest applies the same rules for the HTTP endpoint, in the
// endpoint's error shape: each field maps to a list of messages.
func ValidateRequest(f Fields) map[string][]string {
	details := map[string][]string{}
	if utf8.RuneCountInString(strings.TrimSpace(f.Name)) < minNameLen {
		details[FieldName] = append(details[FieldName], "Name must be at least 2 characters long.")
	}
	if !ValidEmail(f.Email) {
		details[FieldEmail] = append(details[FieldEmail], "Invalid email address.")
	}
	if utf8.RuneCountInString(strings.TrimSpace(f.Message)) < minMessageLen {
		details[FieldMessage] = append(details[FieldMessage], "Message must be at least 10 characters long.")
	}
	return details
}
