// Package contact holds the contact-form submission model, its presence
// validation, and its projection into an outbound email.
package contact

import (
	"errors"
	"strings"
)

// ErrMissingFields is returned when name, email or message is blank.
var ErrMissingFields = errors.New("missing required fields (name, email, message)")

// Submission is one contact-form payload. It is never stored.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (s Submission) Trimmed() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Subject: strings.TrimSpace(s.Subject),
		Message: strings.TrimSpace(s.Message),
	}
}

// Validate checks that name, email and message are present after trimming.
// Subject is optional and the email format is not checked.
func (s Submission) Validate() error {
	t := s.Trimmed()
	if t.Name == "" || t.Email == "" || t.Message == "" {
		return ErrMissingFields
	}
	return nil
}
