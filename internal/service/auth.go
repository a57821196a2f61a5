package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/pennywise/pennywise-api/internal/domain/auth"
	apperrors "github.com/pennywise/pennywise-api/internal/errors"
	"github.com/pennywise/pennywise-api/internal/ports"
)

// DefaultSessionTTL is the session lifetime used when none is configured.
const DefaultSessionTTL = 7 * 24 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Verifier   ports.Verifier
	Sessions   ports.SessionStore
	Users      ports.UserDirectory
	SessionTTL time.Duration
	Logger     *slog.Logger
}

// AuthService orchestrates login, logout, and per-request session resolution.
// Every outcome is one of three shapes: an authenticated principal, a clean
// anonymous result, or an error meaning the server could not decide. Callers
// must treat the error case as a fault, never as anonymous.
type AuthService struct {
	verifier   ports.Verifier
	sessions   ports.SessionStore
	users      ports.UserDirectory
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		verifier:   opts.Verifier,
		sessions:   opts.Sessions,
		users:      opts.Users,
		sessionTTL: ttl,
		logger:     logger,
	}
}

// LoginInput groups parameters for a credential login.
type LoginInput struct {
	Handle string
	Secret string

	// PriorSessionID is the session key the request arrived with, if any.
	// It is destroyed on successful login so the authenticated session never
	// reuses a key that existed before credentials were proven.
	PriorSessionID string
}

// LoginResult contains the authenticated principal and its new session.
type LoginResult struct {
	Principal domainauth.Principal
	Session   domainauth.Session
}

// Login verifies credentials and mints a fresh session. Verification failures
// come back as a single unauthorized error regardless of whether the handle
// exists; session store failures are internal errors.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	principal, err := s.verifier.Verify(ctx, input.Handle, input.Secret)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidCredentials) {
			return nil, apperrors.Unauthorized("invalid username or password")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "verify credentials")
	}

	session, err := s.StartSession(ctx, principal.ID, input.PriorSessionID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Principal: *principal, Session: *session}, nil
}

// StartSession mints a new session key for the given user and persists it,
// destroying the prior key if one was presented. Used by login and by
// registration, which signs the new user in directly.
func (s *AuthService) StartSession(
	ctx context.Context,
	userID, priorSessionID string,
) (*domainauth.Session, error) {
	if priorSessionID != "" {
		if err := s.sessions.Delete(ctx, priorSessionID); err != nil {
			// The new key is minted regardless; the orphaned record expires
			// on its own TTL.
			s.logger.Warn("failed to delete prior session", "error", err)
		}
	}

	session := domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "save session")
	}
	return &session, nil
}

// Authenticate resolves a session key to a principal. A missing, expired, or
// unknown key yields (nil, nil): a clean anonymous request. A session whose
// user no longer exists is discarded and also yields anonymous. Only a store
// or directory fault returns an error.
func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (*domainauth.Principal, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// The account was deleted after the session was minted. Drop the
			// stale session and treat the request as anonymous.
			if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
				s.logger.Warn("failed to delete stale session", "error", deleteErr)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("resolve session user: %w", err)
	}

	return &domainauth.Principal{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

// Logout removes a session. A request with no session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
