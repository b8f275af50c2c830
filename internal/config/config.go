package config

import (
	"time"

	"github.com/zeromicro/go-zero/rest"
)

// EnvProduction is the runtime mode that restricts diagnostics to local callers.
const EnvProduction = "production"

// Config holds the server configuration.
type Config struct {
	rest.RestConf

	// Env is the runtime mode. "production" restricts the debug endpoint.
	Env string `json:",default=development,env=APP_ENV"`
	// ListenPort overrides RestConf.Port when set.
	ListenPort int `json:",optional,env=PORT"`

	Email EmailConfig `json:",optional"`
}

// EmailConfig holds SMTP and envelope settings.
type EmailConfig struct {
	User            string `json:",optional,env=EMAIL_USER"`
	Pass            string `json:",optional,env=EMAIL_PASS"`
	Host            string `json:",default=smtp.gmail.com,env=EMAIL_HOST"`
	Port            int    `json:",default=465,env=EMAIL_PORT"`
	Secure          bool   `json:",default=true,env=EMAIL_SECURE"`
	Receiver        string `json:",optional,env=EMAIL_RECEIVER"`
	FromName        string `json:",default=Portfolio Contact,env=EMAIL_FROM_NAME"`
	// SubjectTemplate may contain {name}; empty means "Portfolio contact from {name}".
	SubjectTemplate string `json:",optional,env=EMAIL_SUBJECT_TEMPLATE"`

	ConnectionTimeout time.Duration `json:",default=5s"`
	SocketTimeout     time.Duration `json:",default=5s"`
	// SendTimeout caps one whole send; keep it below the rest Timeout.
	SendTimeout time.Duration `json:",default=10s"`

	Pool PoolConfig `json:",optional"`
}

// PoolConfig bounds the outbound SMTP pool.
type PoolConfig struct {
	MaxConnections int           `json:",default=5"`
	MaxMessages    int           `json:",default=100"`
	RateLimit      int           `json:",default=10"`
	RateDelta      time.Duration `json:",default=1s"`
}

// Configured reports whether both the account and password are set.
func (c EmailConfig) Configured() bool {
	return c.User != "" && c.Pass != ""
}

// Recipient returns the configured receiver, falling back to the account.
func (c EmailConfig) Recipient() string {
	if c.Receiver != "" {
		return c.Receiver
	}
	return c.User
}

// Production reports whether the server runs in production mode.
func (c Config) Production() bool {
	return c.Env == EnvProduction
}
