package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the credential verification mode for the application.
type AuthMode string

const (
	// AuthModePassword verifies credentials against stored password hashes.
	AuthModePassword AuthMode = "password"
	// AuthModeOIDC verifies an OIDC ID token obtained by the client and maps
	// a token claim onto a local account.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock uses a fixed dev account (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "password", "oidc", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: password, oidc, mock)", v)
	}
}

// OIDCConfig contains OIDC provider configuration (used when Mode=oidc).
type OIDCConfig struct {
	IssuerURL string `env:"ISSUER_URL"`
	ClientID  string `env:"CLIENT_ID"      envDefault:"pennywise"`
	// UsernameClaim is a JMESPath expression mapping token claims to the
	// local username.
	UsernameClaim string `env:"USERNAME_CLAIM" envDefault:"preferred_username"`
}

// DevAuthConfig controls the fixed dev account used when Mode=mock.
type DevAuthConfig struct {
	Username string `env:"USERNAME" envDefault:"devuser"`
	Password string `env:"PASSWORD" envDefault:"devpass"`
	Name     string `env:"NAME"     envDefault:"Dev User"`
}

// AuthConfig groups all authentication and session configuration.
type AuthConfig struct {
	// Mode determines which credential verifier to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"password"`

	// SessionTTL is the lifetime of a session, and the max-age of the
	// session cookie.
	SessionTTL time.Duration `env:"SESSION_MAX_AGE" envDefault:"168h"`

	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session_id"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL < time.Minute {
		a.SessionTTL = time.Minute
	}
	if strings.TrimSpace(a.CookieName) == "" {
		a.CookieName = "session_id"
	}
}
