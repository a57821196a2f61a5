package config

import "strings"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// CORSAllowedOrigin is the frontend origin allowed to make
	// credentialed requests. Empty disables CORS headers entirely,
	// which is correct when the frontend is served from StaticDir.
	CORSAllowedOrigin string `env:"CORS_ALLOWED_ORIGIN" envDefault:""`

	// StaticDir is the directory holding the built frontend. Empty
	// disables static serving.
	StaticDir string `env:"STATIC_DIR" envDefault:""`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.CORSAllowedOrigin = strings.TrimRight(strings.TrimSpace(h.CORSAllowedOrigin), "/")
}
