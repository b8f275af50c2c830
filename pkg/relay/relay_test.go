package relay

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/joeblew999/plat-contact/pkg/contact"
	"github.com/joeblew999/plat-contact/pkg/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	mu   sync.Mutex
	sent []*mail.Message
	err  error
}

func (s *stubSender) Send(_ context.Context, msg *mail.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	if s.err != nil {
		return "", s.err
	}
	return "<stub-1@example.com>", nil
}

func (s *stubSender) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func testConfig() Config {
	return Config{
		Envelope: contact.Envelope{
			Account:   "me@example.com",
			FromName:  "Portfolio Contact",
			Recipient: "inbox@example.com",
		},
		HasCredentials: true,
		ServerAddr:     "smtp.example.com:465",
	}
}

var ada = contact.Submission{Name: "Ada", Email: "ada@x.com", Message: "Hello <b>"}

func TestSubmitSendsOnce(t *testing.T) {
	sender := &stubSender{}
	r := New(testConfig(), sender)

	receipt, err := r.Submit(context.Background(), ada)
	require.NoError(t, err)
	assert.Equal(t, "<stub-1@example.com>", receipt.MessageID)

	require.Equal(t, 1, sender.calls())
	msg := sender.sent[0]
	assert.Equal(t, "ada@x.com", msg.ReplyTo)
	assert.Contains(t, msg.HTML, "Hello &lt;b&gt;")
	assert.Contains(t, msg.Subject, "Ada")
}

func TestSubmitMissingFieldsNeverSends(t *testing.T) {
	sender := &stubSender{}
	r := New(testConfig(), sender)

	for _, s := range []contact.Submission{
		{Email: "ada@x.com", Message: "Hello"},
		{Name: "Ada", Message: "Hello"},
		{Name: "Ada", Email: "ada@x.com"},
		{},
	} {
		_, err := r.Submit(context.Background(), s)
		assert.ErrorIs(t, err, contact.ErrMissingFields)
	}
	assert.Zero(t, sender.calls())
}

func TestSubmitWithoutCredentials(t *testing.T) {
	sender := &stubSender{}
	c := testConfig()
	c.HasCredentials = false
	r := New(c, sender)

	_, err := r.Submit(context.Background(), ada)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, r.EmailConfigured())
	assert.Zero(t, sender.calls())
}

func TestSubmitWithoutTransport(t *testing.T) {
	r := New(testConfig(), nil)

	_, err := r.Submit(context.Background(), ada)
	assert.ErrorIs(t, err, ErrTransportUnavailable)
	assert.False(t, r.Ready())
}

func TestSubmitPropagatesTransportError(t *testing.T) {
	sendErr := &mail.SendError{Code: mail.CodeAuth, Op: "auth", Err: errors.New("535 bad credentials")}
	sender := &stubSender{err: sendErr}
	r := New(testConfig(), sender)

	_, err := r.Submit(context.Background(), ada)
	require.Error(t, err)
	assert.True(t, mail.IsAuth(err))
	assert.Equal(t, 1, sender.calls())
}

func TestSubmitIsNotIdempotent(t *testing.T) {
	sender := &stubSender{}
	r := New(testConfig(), sender)

	for i := 0; i < 2; i++ {
		_, err := r.Submit(context.Background(), ada)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, sender.calls())
}
