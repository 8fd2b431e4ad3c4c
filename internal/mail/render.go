package mail

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"

	"github.com/kundanpawar/portfolio/internal/contact"
)

var htmlTmpl = template.Must(template.New("contact.html").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>New Message from Your Portfolio Site</title></head>
<body style="background:#f3f4f6;font-family:sans-serif">
<div style="background:#fff;border:1px solid #e5e7eb;border-radius:8px;margin:40px auto;padding:40px;width:600px">
  <h1 style="font-size:24px;color:#1f2937;text-align:center">New Contact Form Submission</h1>
  <p style="color:#4b5563">You've received a new message from your portfolio contact form.</p>
  <hr style="border-color:#d1d5db;margin:20px 0">
  <p style="font-size:18px;font-weight:600;color:#1f2937">Sender's Details:</p>
  <p style="color:#374151"><strong>Name:</strong> {{.Name}}</p>
  <p style="color:#374151"><strong>Email:</strong> <a href="mailto:{{.Email}}" style="color:#2563eb">{{.Email}}</a></p>
  <hr style="border-color:#d1d5db;margin:20px 0">
  <p style="font-size:18px;font-weight:600;color:#1f2937">Message:</p>
  <p style="color:#374151;white-space:pre-wrap">{{.Message}}</p>
  <hr style="border-color:#d1d5db;margin:20px 0">
  <p style="font-size:14px;color:#6b7280;text-align:center">This message was sent from your portfolio website.</p>
</div>
</body>
</html>
`))

var textTmpl = texttemplate.Must(texttemplate.New("contact.txt").Parse(`New Contact Form Submission

Name: {{.Name}}
Email: {{.Email}}

Message:
{{.Message}}

--
This message was sent from your portfolio website.
`))

// Render produces the HTML and plain-text bodies for a submission.
func Render(f contact.Fields) (html, text string, err error) {
	var hb, tb bytes.Buffer
	if err := htmlTmpl.Execute(&hb, f); err != nil {
		return "", "", fmt.Errorf("rendering html body: %w", err)
	}
	if err := textTmpl.Execute(&tb, f); err != nil {
		return "", "", fmt.Errorf("rendering text body: %w", err)
	}
	return hb.String(), tb.String(), nil
}
