// Package relay forwards validated contact submissions to a mailbox through
// an injected mail transport.
package relay

import (
	"context"
	"errors"
	"time"

	"github.com/joeblew999/plat-contact/pkg/contact"
	"github.com/joeblew999/plat-contact/pkg/mail"
	"github.com/zeromicro/go-zero/core/logx"
)

var (
	// ErrNotConfigured means the sending account or its password is missing.
	ErrNotConfigured = errors.New("email credentials not configured")
	// ErrTransportUnavailable means the transport could not be created at startup.
	ErrTransportUnavailable = errors.New("email transport not initialized")
)

// Sender is the single capability the relay needs from a mail transport.
type Sender interface {
	Send(ctx context.Context, msg *mail.Message) (string, error)
}

// Config is the immutable relay configuration.
type Config struct {
	Envelope       contact.Envelope
	HasCredentials bool
	// ServerAddr is only used in operator hints.
	ServerAddr string
}

// Receipt describes a delivered submission.
type Receipt struct {
	MessageID string
}

// Relay validates submissions and sends each one exactly once.
type Relay struct {
	config Config
	sender Sender
}

// New returns a relay. A nil sender marks the transport as unavailable.
func New(c Config, sender Sender) *Relay {
	return &Relay{config: c, sender: sender}
}

// EmailConfigured reports whether mail credentials are present.
func (r *Relay) EmailConfigured() bool {
	return r.config.HasCredentials
}

// Ready reports whether a transport was constructed.
func (r *Relay) Ready() bool {
	return r.sender != nil
}

// Envelope returns the fixed envelope used for every message.
func (r *Relay) Envelope() contact.Envelope {
	return r.config.Envelope
}

// Submit validates s and sends it. Errors are contact.ErrMissingFields,
// ErrNotConfigured, ErrTransportUnavailable, or the transport error.
func (r *Relay) Submit(ctx context.Context, s contact.Submission) (*Receipt, error) {
	logger := logx.WithContext(ctx)

	if err := s.Validate(); err != nil {
		submissions.Inc(outcomeInvalid)
		return nil, err
	}

	if !r.config.HasCredentials {
		logger.Error("contact submission rejected: SMTP credentials not configured")
		submissions.Inc(outcomeNotConfigured)
		return nil, ErrNotConfigured
	}

	if r.sender == nil {
		logger.Error("contact submission rejected: email transport failed to initialize")
		submissions.Inc(outcomeNotConfigured)
		return nil, ErrTransportUnavailable
	}

	msg, err := contact.Compose(s, r.config.Envelope)
	if err != nil {
		submissions.Inc(outcomeFailed)
		return nil, err
	}

	logger.Infow("sending contact email", logx.Field("to", msg.To))

	start := time.Now()
	id, err := r.sender.Send(ctx, msg)
	if err != nil {
		sendDuration.ObserveFloat(time.Since(start).Seconds(), "error")
		code := mail.CodeOf(err)
		fields := []logx.LogField{
			logx.Field("code", string(code)),
			logx.Field("error", err.Error()),
		}
		if hint := mail.Hint(err, r.config.ServerAddr); hint != "" {
			fields = append(fields, logx.Field("hint", hint))
		}
		logger.Errorw("failed to send contact email", fields...)
		submissions.Inc(outcomeFailed)
		sendFailures.Inc(string(code))
		return nil, err
	}

	sendDuration.ObserveFloat(time.Since(start).Seconds(), "ok")
	logger.Infow("contact email sent", logx.Field("messageId", id))
	submissions.Inc(outcomeSent)
	return &Receipt{MessageID: id}, nil
}
