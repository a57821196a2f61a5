package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/pennywise/pennywise-api/internal/domain/auth"
	"github.com/pennywise/pennywise-api/internal/domain/model"
)

// ErrInvalidCredentials is returned by every Verifier when the handle/secret
// pair does not match a stored credential record. Implementations must not
// distinguish "unknown handle" from "wrong secret" through this error or
// through observable timing.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrSessionNotFound is returned by SessionStore.Get when no live session
// exists for the given key. Every other Get error means the store itself is
// unreachable, which callers must treat as a server fault, never as an
// anonymous request.
var ErrSessionNotFound = errors.New("session not found")

// Verifier confirms a login identifier and secret against stored credential
// records and returns the matching principal. One implementation exists per
// credential scheme (password, federated token, dev); the active one is
// selected by configuration at startup.
type Verifier interface {
	Verify(ctx context.Context, handle, secret string) (*domainauth.Principal, error)
}

// SessionStore persists and retrieves user sessions. Get returns the store's
// not-found sentinel for missing or expired entries; any other error means
// the store itself is unavailable and callers must fail closed.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// UserDirectory resolves user records for principal reconstruction and
// credential verification.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
