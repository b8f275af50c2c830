// Package config provides environment lookups shared by the contact CLI.
package config

import (
	"os"
	"strings"
	"time"
)

const (
	defaultBackendURL  = "http://localhost:3000"
	defaultContactPath = "/api/contact"
	defaultTimeout     = 15 * time.Second
)

// GetBackendURL returns the relay origin.
// It checks for CONTACT_BACKEND_URL environment variable, otherwise uses a default.
func GetBackendURL() string {
	if url := os.Getenv("CONTACT_BACKEND_URL"); url != "" {
		return strings.TrimRight(url, "/")
	}
	return defaultBackendURL
}

// GetContactPath returns the path of the relay endpoint.
// It checks for CONTACT_PATH environment variable, otherwise uses a default.
func GetContactPath() string {
	if path := os.Getenv("CONTACT_PATH"); path != "" {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return path
	}
	return defaultContactPath
}

// GetTimeout returns the client request timeout.
// It checks for CONTACT_TIMEOUT environment variable (a Go duration), otherwise uses a default.
func GetTimeout() time.Duration {
	if v := os.Getenv("CONTACT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return defaultTimeout
}
