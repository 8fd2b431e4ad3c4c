package contact

import (
	"regexp"
	"strings"
)

var (
	angleBrackets = regexp.MustCompile(`[<>]`)
	jsProtocol    = regexp.MustCompile(`(?i)javascript:`)
	eventHandler  = regexp.MustCompile(`(?i)on\w+=`)
	scriptTag     = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	iframeTag     = regexp.MustCompile(`(?is)<iframe\b.*?</iframe>`)
)

// SanitizeString trims s and strips markup and script vectors.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	s = angleBrackets.ReplaceAllString(s, "")
	s = jsProtocol.ReplaceAllString(s, "")
	return eventHandler.ReplaceAllString(s, "")
}

// SanitizeEmail lower-cases and trims an address.
func SanitizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SanitizeMessage removes script and iframe elements and inline handlers
// while keeping line breaks and ordinary punctuation.
func SanitizeMessage(s string) string {
	s = strings.TrimSpace(s)
	s = scriptTag.ReplaceAllString(s, "")
	s = iframeTag.ReplaceAllString(s, "")
	s = jsProtocol.ReplaceAllString(s, "")
	return eventHandler.ReplaceAllString(s, "")
}

// Sanitize cleans every field before it is rendered into an email.
func Sanitize(f Fields) Fields {
	return Fields{
		Name:    SanitizeString(f.Name),
		Email:   SanitizeEmail(f.Email),
		Message: SanitizeMessage(f.Message),
	}
}
