package mail

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/smtp"
	"time"
)

// session is one authenticated SMTP connection.
type session struct {
	conn   net.Conn
	client *smtp.Client
	sent   int
}

func (t *Transport) dial(ctx context.Context) (*session, error) {
	dialer := &net.Dialer{Timeout: t.cfg.ConnectionTimeout}

	var (
		conn net.Conn
		err  error
	)
	if t.cfg.Secure {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: t.tlsConfig()}).DialContext(ctx, "tcp", t.cfg.Addr())
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", t.cfg.Addr())
	}
	if err != nil {
		return nil, newSendError(opDial, err)
	}
	_ = conn.SetDeadline(t.deadline(ctx))

	client, err := smtp.NewClient(conn, t.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, newSendError(opGreeting, err)
	}
	s := &session{conn: conn, client: client}

	if err := client.Hello(t.cfg.LocalName); err != nil {
		s.close()
		return nil, newSendError(opHello, err)
	}

	if !t.cfg.Secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(t.tlsConfig()); err != nil {
				s.close()
				return nil, newSendError(opHello, err)
			}
		}
	}

	if t.cfg.Username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)
			if err := client.Auth(auth); err != nil {
				s.close()
				return nil, newSendError(opAuth, err)
			}
		}
	}

	return s, nil
}

func (s *session) send(from string, to []string, msg io.WriterTo, deadline time.Time) error {
	_ = s.conn.SetDeadline(deadline)

	if err := s.client.Mail(from); err != nil {
		return newSendError(opMail, err)
	}
	for _, rcpt := range to {
		if err := s.client.Rcpt(rcpt); err != nil {
			return newSendError(opRcpt, err)
		}
	}

	w, err := s.client.Data()
	if err != nil {
		return newSendError(opData, err)
	}
	if _, err := msg.WriteTo(w); err != nil {
		w.Close()
		return newSendError(opData, err)
	}
	if err := w.Close(); err != nil {
		return newSendError(opData, err)
	}

	s.sent++
	return nil
}

// alive checks an idle session with NOOP before it is reused.
func (s *session) alive(deadline time.Time) bool {
	_ = s.conn.SetDeadline(deadline)
	return s.client.Noop() == nil
}

func (s *session) quit() {
	_ = s.conn.SetDeadline(time.Now().Add(time.Second))
	if err := s.client.Quit(); err != nil {
		s.close()
	}
}

func (s *session) close() {
	_ = s.client.Close()
}
