package server

import (
	"context"

	"github.com/joeblew999/plat-contact/pkg/mail"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

// verifier is the part of mail.Transport the startup check needs.
type verifier interface {
	Verify(ctx context.Context) error
	Close() error
	Config() mail.Config
}

// transportService adapts the mail transport to the service.Service interface.
// Start verifies the SMTP account in the background; the API stays up either way.
type transportService struct {
	transport verifier
	verify    bool
	done      chan struct{}
}

func newTransportService(t verifier, verify bool) *transportService {
	return &transportService{transport: t, verify: verify, done: make(chan struct{})}
}

func (s *transportService) Start() {
	if !s.verify {
		close(s.done)
		return
	}

	threading.GoSafe(func() {
		defer close(s.done)
		s.check(context.Background())
	})
}

func (s *transportService) check(ctx context.Context) {
	addr := s.transport.Config().Addr()
	if err := s.transport.Verify(ctx); err != nil {
		fields := []logx.LogField{
			logx.Field("code", string(mail.CodeOf(err))),
			logx.Field("error", err.Error()),
			logx.Field("smtp", addr),
		}
		if hint := mail.Hint(err, addr); hint != "" {
			fields = append(fields, logx.Field("hint", hint))
		}
		logx.Errorw("SMTP verification failed", fields...)
		return
	}
	logx.Infow("SMTP server is ready to take messages", logx.Field("smtp", addr))
}

func (s *transportService) Stop() {
	if err := s.transport.Close(); err != nil {
		logx.Errorf("close email transport: %v", err)
	}
}
