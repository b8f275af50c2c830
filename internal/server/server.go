package server

import (
	"fmt"
	"net/http"

	"github.com/joeblew999/plat-contact/internal/config"
	"github.com/joeblew999/plat-contact/internal/errorx"
	"github.com/joeblew999/plat-contact/internal/handler"
	"github.com/joeblew999/plat-contact/internal/svc"
	"github.com/joeblew999/plat-contact/internal/ui"
	"github.com/joeblew999/plat-contact/pkg/contact"
	"github.com/joeblew999/plat-contact/pkg/mail"
	"github.com/joeblew999/plat-contact/pkg/relay"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/prometheus"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/rest"
)

// Server wraps the contact API, the contact page and the mail transport.
type Server struct {
	config config.Config
	group  *service.ServiceGroup
}

// New creates a new server instance.
func New(c config.Config) (*Server, error) {
	// Register global error handler for proper HTTP status codes
	errorx.RegisterErrorHandler()

	// Enable go-zero prometheus metrics (required for metric.CounterVec/HistogramVec to record)
	prometheus.Enable()

	if c.ListenPort > 0 {
		c.Port = c.ListenPort
	}

	smtpConfig := TransportConfig(c.Email)

	// A transport that fails to build leaves the relay up but not ready.
	var sender relay.Sender
	transport, err := mail.NewTransport(smtpConfig)
	if err != nil {
		logx.Errorw("email transport initialization failed",
			logx.Field("error", err.Error()),
			logx.Field("smtp", smtpConfig.Addr()),
		)
	} else {
		sender = transport
	}

	if !c.Email.Configured() {
		logx.Error("EMAIL_USER or EMAIL_PASS not set; contact submissions will be rejected")
	}

	contactRelay := relay.New(relay.Config{
		Envelope: contact.Envelope{
			Account:         c.Email.User,
			FromName:        c.Email.FromName,
			Recipient:       c.Email.Recipient(),
			SubjectTemplate: c.Email.SubjectTemplate,
		},
		HasCredentials: c.Email.Configured(),
		ServerAddr:     smtpConfig.Addr(),
	}, sender)

	apiServer, err := rest.NewServer(c.RestConf, rest.WithCors("*"))
	if err != nil {
		return nil, fmt.Errorf("failed to create API server: %w", err)
	}

	handler.RegisterHandlers(apiServer, svc.NewServiceContext(c, contactRelay))

	uiHandlers := ui.NewHandlers(contactRelay)
	apiServer.AddRoutes(uiHandlers.Routes())

	// Expose Prometheus metrics endpoint
	apiServer.AddRoute(rest.Route{
		Method:  http.MethodGet,
		Path:    "/metrics",
		Handler: promhttp.Handler().ServeHTTP,
	})

	group := service.NewServiceGroup()
	if transport != nil {
		group.Add(newTransportService(transport, c.Email.Configured()))
	}
	group.Add(apiServer)

	logx.Infow("contact server configured",
		logx.Field("api", fmt.Sprintf("http://%s:%d/api/contact", c.Host, c.Port)),
		logx.Field("page", fmt.Sprintf("http://%s:%d/contact", c.Host, c.Port)),
		logx.Field("smtp", smtpConfig.Addr()),
		logx.Field("secure", smtpConfig.Secure),
		logx.Field("receiver", c.Email.Recipient()),
		logx.Field("env", c.Env),
	)

	return &Server{config: c, group: group}, nil
}

// TransportConfig maps the email settings onto the SMTP transport configuration.
func TransportConfig(c config.EmailConfig) mail.Config {
	return mail.Config{
		Host:              c.Host,
		Port:              c.Port,
		Secure:            c.Secure,
		Username:          c.User,
		Password:          c.Pass,
		ConnectionTimeout: c.ConnectionTimeout,
		SocketTimeout:     c.SocketTimeout,
		SendTimeout:       c.SendTimeout,
		MaxConnections:    c.Pool.MaxConnections,
		MaxMessages:       c.Pool.MaxMessages,
		RateLimit:         c.Pool.RateLimit,
		RateDelta:         c.Pool.RateDelta,
	}
}

// Start starts all services. Blocks until shutdown signal.
func (s *Server) Start() {
	s.group.Start()
}

// Stop stops all services.
func (s *Server) Stop() {
	s.group.Stop()
}
