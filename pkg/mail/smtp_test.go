package mail

import (
	"context"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSMTP is a scripted SMTP peer speaking just enough of the protocol for
// net/smtp: EHLO, AUTH PLAIN, MAIL, RCPT, DATA, NOOP, RSET, QUIT.
type fakeSMTP struct {
	ln     net.Listener
	authOK bool
	// delay is applied before every reply.
	delay time.Duration

	mu       sync.Mutex
	conns    int
	messages []string
}

func newFakeSMTP(t *testing.T, authOK bool) *fakeSMTP {
	t.Helper()
	return newSlowFakeSMTP(t, authOK, 0)
}

func newSlowFakeSMTP(t *testing.T, authOK bool, delay time.Duration) *fakeSMTP {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeSMTP{ln: ln, authOK: authOK, delay: delay}
	go s.serve()
	t.Cleanup(func() { ln.Close() })
	return s
}

func (s *fakeSMTP) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeSMTP) serve() {
	for {
		c, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns++
		s.mu.Unlock()
		go s.handle(c)
	}
}

func (s *fakeSMTP) handle(c net.Conn) {
	defer c.Close()
	tp := textproto.NewConn(c)
	_ = tp.PrintfLine("220 fake ESMTP ready")

	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		cmd := strings.ToUpper(line)
		time.Sleep(s.delay)

		switch {
		case strings.HasPrefix(cmd, "EHLO"):
			_ = tp.PrintfLine("250-fake greets you")
			_ = tp.PrintfLine("250 AUTH PLAIN")
		case strings.HasPrefix(cmd, "HELO"):
			_ = tp.PrintfLine("250 fake")
		case strings.HasPrefix(cmd, "AUTH"):
			if s.authOK {
				_ = tp.PrintfLine("235 2.7.0 Authentication successful")
			} else {
				_ = tp.PrintfLine("535 5.7.8 Authentication credentials invalid")
			}
		case cmd == "*":
			_ = tp.PrintfLine("501 5.7.0 Authentication aborted")
		case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"),
			strings.HasPrefix(cmd, "RSET"), strings.HasPrefix(cmd, "NOOP"):
			_ = tp.PrintfLine("250 2.0.0 OK")
		case strings.HasPrefix(cmd, "DATA"):
			_ = tp.PrintfLine("354 Go ahead")
			lines, err := tp.ReadDotLines()
			if err != nil {
				return
			}
			s.mu.Lock()
			s.messages = append(s.messages, strings.Join(lines, "\n"))
			s.mu.Unlock()
			_ = tp.PrintfLine("250 2.0.0 OK queued")
		case strings.HasPrefix(cmd, "QUIT"):
			_ = tp.PrintfLine("221 2.0.0 Bye")
			return
		default:
			_ = tp.PrintfLine("502 5.5.1 Unrecognized command")
		}
	}
}

func (s *fakeSMTP) snapshot() (int, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns, append([]string(nil), s.messages...)
}

func testConfig(port int) Config {
	return Config{
		Host:              "127.0.0.1",
		Port:              port,
		Username:          "me@example.com",
		Password:          "secret",
		ConnectionTimeout: time.Second,
		SocketTimeout:     time.Second,
	}
}

func testMessage() *Message {
	return &Message{
		From:     "me@example.com",
		FromName: "Portfolio Contact",
		To:       "inbox@example.com",
		ReplyTo:  "ada@x.com",
		Subject:  "Portfolio contact from Ada",
		Text:     "Name: Ada\nEmail: ada@x.com\n\nMessage:\nHello",
		HTML:     "<p>Hello</p>",
	}
}

func TestNewTransportValidatesConfig(t *testing.T) {
	_, err := NewTransport(Config{Port: 465})
	assert.Error(t, err)

	_, err = NewTransport(Config{Host: "smtp.example.com", Port: 0})
	assert.Error(t, err)

	tr, err := NewTransport(Config{Host: "smtp.example.com", Port: 465})
	require.NoError(t, err)
	cfg := tr.Config()
	assert.Equal(t, defaultTimeout, cfg.ConnectionTimeout)
	assert.Equal(t, defaultTimeout, cfg.SocketTimeout)
	assert.Equal(t, defaultMaxConnections, cfg.MaxConnections)
	assert.Equal(t, "smtp.example.com:465", cfg.Addr())
}

func TestSendDeliversMessage(t *testing.T) {
	srv := newFakeSMTP(t, true)
	tr, err := NewTransport(testConfig(srv.port()))
	require.NoError(t, err)
	defer tr.Close()

	id, err := tr.Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "<") && strings.HasSuffix(id, "@example.com>"), id)

	_, messages := srv.snapshot()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "Reply-To: ada@x.com")
	assert.Contains(t, messages[0], "Subject: Portfolio contact from Ada")
	assert.Contains(t, messages[0], id)
	assert.Contains(t, messages[0], "multipart/alternative")
}

func TestSendReusesPooledSession(t *testing.T) {
	srv := newFakeSMTP(t, true)
	tr, err := NewTransport(testConfig(srv.port()))
	require.NoError(t, err)
	defer tr.Close()

	for i := 0; i < 3; i++ {
		_, err := tr.Send(context.Background(), testMessage())
		require.NoError(t, err)
	}

	conns, messages := srv.snapshot()
	assert.Equal(t, 1, conns)
	assert.Len(t, messages, 3)
}

func TestSendRecyclesSessionAfterMaxMessages(t *testing.T) {
	srv := newFakeSMTP(t, true)
	cfg := testConfig(srv.port())
	cfg.MaxMessages = 1
	tr, err := NewTransport(cfg)
	require.NoError(t, err)
	defer tr.Close()

	for i := 0; i < 2; i++ {
		_, err := tr.Send(context.Background(), testMessage())
		require.NoError(t, err)
	}

	conns, _ := srv.snapshot()
	assert.Equal(t, 2, conns)
}

func TestSendClassifiesAuthFailure(t *testing.T) {
	srv := newFakeSMTP(t, false)
	tr, err := NewTransport(testConfig(srv.port()))
	require.NoError(t, err)

	_, err = tr.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.True(t, IsAuth(err), err)
	assert.False(t, IsConnectivity(err))
	assert.NotContains(t, err.Error(), "secret")

	_, messages := srv.snapshot()
	assert.Empty(t, messages)
}

func TestSendClassifiesRefusedConnection(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	tr, err := NewTransport(testConfig(port))
	require.NoError(t, err)

	_, err = tr.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Equal(t, CodeConnRefused, CodeOf(err))
	assert.True(t, IsConnectivity(err))
	assert.Contains(t, Hint(err, "127.0.0.1:"+strconv.Itoa(port)), "cannot connect")
}

func TestSendClassifiesSilentPeerAsTimeout(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	held := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err == nil {
			held <- c
		}
	}()

	cfg := testConfig(ln.Addr().(*net.TCPAddr).Port)
	cfg.SocketTimeout = 150 * time.Millisecond
	tr, err := NewTransport(cfg)
	require.NoError(t, err)

	start := time.Now()
	_, err = tr.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Equal(t, CodeTimeout, CodeOf(err))
	assert.Less(t, time.Since(start), 3*time.Second)

	select {
	case c := <-held:
		c.Close()
	default:
	}
}

func TestSendBoundedByOverallTimeout(t *testing.T) {
	// Every exchange finishes well inside SocketTimeout, but the whole
	// session does not fit in SendTimeout.
	srv := newSlowFakeSMTP(t, true, 150*time.Millisecond)

	cfg := testConfig(srv.port())
	cfg.SocketTimeout = 2 * time.Second
	cfg.SendTimeout = 300 * time.Millisecond
	tr, err := NewTransport(cfg)
	require.NoError(t, err)

	start := time.Now()
	_, err = tr.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Equal(t, CodeTimeout, CodeOf(err))
	assert.True(t, IsConnectivity(err))
	assert.Less(t, time.Since(start), time.Second)
}

func TestSendWithinOverallTimeout(t *testing.T) {
	srv := newSlowFakeSMTP(t, true, 10*time.Millisecond)

	cfg := testConfig(srv.port())
	cfg.SendTimeout = 2 * time.Second
	tr, err := NewTransport(cfg)
	require.NoError(t, err)
	defer tr.Close()

	_, err = tr.Send(context.Background(), testMessage())
	require.NoError(t, err)
}

func TestSendTimeoutDefault(t *testing.T) {
	tr, err := NewTransport(Config{Host: "127.0.0.1", Port: 25})
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, tr.Config().SendTimeout)
}

func TestSendRejectsIncompleteMessage(t *testing.T) {
	tr, err := NewTransport(Config{Host: "127.0.0.1", Port: 1})
	require.NoError(t, err)

	_, err = tr.Send(context.Background(), &Message{From: "me@example.com", Text: "x"})
	require.Error(t, err)
	assert.Equal(t, CodeEnvelope, CodeOf(err))
}

func TestSendAfterClose(t *testing.T) {
	tr, err := NewTransport(Config{Host: "127.0.0.1", Port: 1})
	require.NoError(t, err)
	require.NoError(t, tr.Close())

	_, err = tr.Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestVerify(t *testing.T) {
	srv := newFakeSMTP(t, true)
	tr, err := NewTransport(testConfig(srv.port()))
	require.NoError(t, err)
	assert.NoError(t, tr.Verify(context.Background()))

	bad := newFakeSMTP(t, false)
	tr, err = NewTransport(testConfig(bad.port()))
	require.NoError(t, err)
	assert.True(t, IsAuth(tr.Verify(context.Background())))
}
