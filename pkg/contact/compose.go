package contact

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/joeblew999/plat-contact/pkg/mail"
)

// NamePlaceholder is replaced with the sender's name in a subject template.
const NamePlaceholder = "{name}"

// DefaultSubjectTemplate is used when an Envelope has no subject template.
const DefaultSubjectTemplate = "Portfolio contact from " + NamePlaceholder

// Envelope is the fixed, per-deployment part of every outbound message.
type Envelope struct {
	Account         string // authenticated sending account, used as From
	FromName        string
	Recipient       string
	SubjectTemplate string
}

// Subject returns the submitted subject, or the envelope template rendered
// with the sender's name.
func (e Envelope) Subject(s Submission) string {
	if subject := headerValue(s.Subject); subject != "" {
		return subject
	}

	tpl := e.SubjectTemplate
	if tpl == "" {
		tpl = DefaultSubjectTemplate
	}
	name := headerValue(s.Name)
	if !strings.Contains(tpl, NamePlaceholder) {
		return tpl + " (" + name + ")"
	}
	return strings.ReplaceAll(tpl, NamePlaceholder, name)
}

var htmlBody = template.Must(template.New("contact").Parse(`<h3>New Portfolio Contact</h3>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p><strong>Message:</strong></p>
<pre>{{.Message}}</pre>
`))

// Compose projects a validated submission into an outbound message. Every
// user-supplied value placed in the HTML body is escaped.
func Compose(s Submission, env Envelope) (*mail.Message, error) {
	s = s.Trimmed()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	shownSubject := s.Subject
	if shownSubject == "" {
		shownSubject = "N/A"
	}

	var buf bytes.Buffer
	if err := htmlBody.Execute(&buf, Submission{
		Name:    s.Name,
		Email:   s.Email,
		Subject: shownSubject,
		Message: s.Message,
	}); err != nil {
		return nil, fmt.Errorf("render html body: %w", err)
	}

	return &mail.Message{
		From:     env.Account,
		FromName: env.FromName,
		To:       env.Recipient,
		ReplyTo:  headerValue(s.Email),
		Subject:  env.Subject(s),
		Text:     fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", s.Name, s.Email, s.Message),
		HTML:     buf.String(),
	}, nil
}

// headerValue folds line breaks and runs of whitespace so user input stays on
// one header line.
func headerValue(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
