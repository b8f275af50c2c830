package mail

import (
	"errors"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

// Message is an outbound email. Text and HTML are sent as
// multipart/alternative when both are set.
type Message struct {
	From     string // authenticated sending account
	FromName string
	To       string
	ReplyTo  string
	Subject  string
	Text     string
	HTML     string
}

func (m *Message) validate() error {
	switch {
	case m == nil:
		return errors.New("mail: nil message")
	case strings.TrimSpace(m.From) == "":
		return errors.New("mail: sender address is required")
	case strings.TrimSpace(m.To) == "":
		return errors.New("mail: recipient address is required")
	case m.Text == "" && m.HTML == "":
		return errors.New("mail: message has no body")
	}
	return nil
}

// compose renders m as a MIME message carrying the given Message-ID.
func (m *Message) compose(id string, now time.Time) *gomail.Message {
	g := gomail.NewMessage()
	if m.FromName != "" {
		g.SetAddressHeader("From", m.From, m.FromName)
	} else {
		g.SetHeader("From", m.From)
	}
	g.SetHeader("To", m.To)
	if m.ReplyTo != "" {
		g.SetHeader("Reply-To", m.ReplyTo)
	}
	g.SetHeader("Subject", m.Subject)
	g.SetHeader("Message-ID", id)
	g.SetDateHeader("Date", now)

	switch {
	case m.Text != "" && m.HTML != "":
		g.SetBody("text/plain", m.Text)
		g.AddAlternative("text/html", m.HTML)
	case m.HTML != "":
		g.SetBody("text/html", m.HTML)
	default:
		g.SetBody("text/plain", m.Text)
	}

	return g
}
