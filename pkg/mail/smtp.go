// Package mail provides a pooled SMTP transport with bounded timeouts and
// classified delivery errors.
package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout        = 5 * time.Second
	defaultSendTimeout    = 10 * time.Second
	defaultMaxConnections = 5
	defaultMaxMessages    = 100
	defaultRateLimit      = 10
	defaultRateDelta      = time.Second
	defaultLocalName      = "localhost"
)

// ErrClosed is returned by Send after the transport has been closed.
var ErrClosed = errors.New("mail: transport closed")

// Config holds configuration for sending emails via SMTP.
type Config struct {
	Host     string
	Port     int
	Secure   bool // implicit TLS; when false STARTTLS is used if offered
	Username string
	Password string

	// LocalName is sent in EHLO. Defaults to "localhost".
	LocalName string

	ConnectionTimeout time.Duration
	SocketTimeout     time.Duration
	// SendTimeout bounds a whole Send or Verify, rate wait included.
	SendTimeout time.Duration

	MaxConnections int // concurrent SMTP sessions
	MaxMessages    int // messages per session before it is recycled
	RateLimit      int // messages allowed per RateDelta
	RateDelta      time.Duration

	TLSConfig *tls.Config
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// HasCredentials reports whether both username and password are set.
func (c Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

func (c Config) withDefaults() Config {
	if c.ConnectionTimeout <= 0 {
		c.ConnectionTimeout = defaultTimeout
	}
	if c.SocketTimeout <= 0 {
		c.SocketTimeout = defaultTimeout
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = defaultSendTimeout
	}
	if c.MaxConnections <= 0 {
		c.MaxConnections = defaultMaxConnections
	}
	if c.MaxMessages <= 0 {
		c.MaxMessages = defaultMaxMessages
	}
	if c.RateLimit <= 0 {
		c.RateLimit = defaultRateLimit
	}
	if c.RateDelta <= 0 {
		c.RateDelta = defaultRateDelta
	}
	if c.LocalName == "" {
		c.LocalName = defaultLocalName
	}
	return c
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return errors.New("mail: smtp host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("mail: invalid smtp port %d", c.Port)
	}
	return nil
}

// Transport delivers messages over a small pool of SMTP sessions.
// It is safe for concurrent use.
type Transport struct {
	cfg     Config
	limiter *rate.Limiter
	slots   chan struct{}

	mu     sync.Mutex
	idle   []*session
	closed bool
}

// NewTransport validates cfg and returns a ready transport. No connection is
// opened until the first Send or Verify.
func NewTransport(cfg Config) (*Transport, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// RateLimit messages per RateDelta, with a burst of the full window.
	limiter := rate.NewLimiter(rate.Every(cfg.RateDelta/time.Duration(cfg.RateLimit)), cfg.RateLimit)

	return &Transport{
		cfg:     cfg,
		limiter: limiter,
		slots:   make(chan struct{}, cfg.MaxConnections),
	}, nil
}

// Config returns the effective configuration.
func (t *Transport) Config() Config {
	return t.cfg
}

// Send delivers msg once and returns the Message-ID assigned to it.
// Failures are returned as *SendError.
func (t *Transport) Send(ctx context.Context, msg *Message) (string, error) {
	if t.isClosed() {
		return "", ErrClosed
	}
	if err := msg.validate(); err != nil {
		return "", newSendError(opCompose, err)
	}

	ctx, cancel := context.WithTimeout(ctx, t.cfg.SendTimeout)
	defer cancel()

	if err := t.limiter.Wait(ctx); err != nil {
		return "", newSendError(opWait, err)
	}

	select {
	case t.slots <- struct{}{}:
	case <-ctx.Done():
		return "", newSendError(opWait, ctx.Err())
	}
	defer func() { <-t.slots }()

	s, err := t.acquire(ctx)
	if err != nil {
		return "", err
	}

	id := messageID(msg.From, t.cfg.Host)
	if err := s.send(msg.From, []string{msg.To}, msg.compose(id, time.Now()), t.deadline(ctx)); err != nil {
		s.close()
		return "", err
	}

	t.release(s)
	return id, nil
}

// Verify opens a session, authenticates and quits. It is used at startup to
// surface misconfiguration early.
func (t *Transport) Verify(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.SendTimeout)
	defer cancel()

	s, err := t.dial(ctx)
	if err != nil {
		return err
	}
	s.quit()
	return nil
}

// Close quits all idle sessions. Sessions in use are closed when their send
// completes.
func (t *Transport) Close() error {
	t.mu.Lock()
	t.closed = true
	idle := t.idle
	t.idle = nil
	t.mu.Unlock()

	for _, s := range idle {
		s.quit()
	}
	return nil
}

func (t *Transport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// acquire pops a live idle session or dials a new one.
func (t *Transport) acquire(ctx context.Context) (*session, error) {
	for {
		t.mu.Lock()
		n := len(t.idle)
		if n == 0 {
			t.mu.Unlock()
			return t.dial(ctx)
		}
		s := t.idle[n-1]
		t.idle = t.idle[:n-1]
		t.mu.Unlock()

		if s.alive(t.deadline(ctx)) {
			return s, nil
		}
		s.close()
	}
}

func (t *Transport) release(s *session) {
	if s.sent >= t.cfg.MaxMessages {
		s.quit()
		return
	}

	t.mu.Lock()
	if t.closed || len(t.idle) >= t.cfg.MaxConnections {
		t.mu.Unlock()
		s.quit()
		return
	}
	t.idle = append(t.idle, s)
	t.mu.Unlock()
}

// deadline bounds a single SMTP exchange by the socket timeout or the
// context deadline, whichever comes first.
func (t *Transport) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(t.cfg.SocketTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(d) {
		return dl
	}
	return d
}

func (t *Transport) tlsConfig() *tls.Config {
	if t.cfg.TLSConfig != nil {
		return t.cfg.TLSConfig.Clone()
	}
	return &tls.Config{ServerName: t.cfg.Host, MinVersion: tls.VersionTLS12}
}

func messageID(from, fallbackDomain string) string {
	domain := fallbackDomain
	if at := strings.LastIndexByte(from, '@'); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
