package devauth

// Package devauth provides a simple, config-driven credential verifier for
// local development. It accepts a single configured username/password pair
// and resolves the matching account through the user directory, so sessions
// it opens reconstruct exactly like password-mode sessions do.

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	domainauth "github.com/pennywise/pennywise-api/internal/domain/auth"
	apperrors "github.com/pennywise/pennywise-api/internal/errors"
	"github.com/pennywise/pennywise-api/internal/ports"
)

// Config controls the dev verifier behavior.
type Config struct {
	Username string
	Password string
}

// Verifier implements ports.Verifier for local development. The dev account
// must exist in the user directory; principal identity comes from its record.
type Verifier struct {
	users    ports.UserDirectory
	username string
	password string
}

// NewVerifier constructs a dev verifier from Config.
func NewVerifier(users ports.UserDirectory, cfg Config) (*Verifier, error) {
	if users == nil {
		return nil, errors.New("dev auth: user directory is required")
	}
	if cfg.Username == "" {
		return nil, errors.New("dev auth: Username is required")
	}
	if cfg.Password == "" {
		return nil, errors.New("dev auth: Password is required")
	}
	return &Verifier{
		users:    users,
		username: cfg.Username,
		password: cfg.Password,
	}, nil
}

// Verify accepts only the configured credential pair and returns the
// principal backed by the dev account's directory record.
func (v *Verifier) Verify(ctx context.Context, handle, secret string) (*domainauth.Principal, error) {
	handleOK := subtle.ConstantTimeCompare([]byte(handle), []byte(v.username)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(secret), []byte(v.password)) == 1
	if !handleOK || !secretOK {
		return nil, ports.ErrInvalidCredentials
	}

	user, err := v.users.GetByUsername(ctx, v.username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("dev account %q is not provisioned", v.username)
		}
		return nil, fmt.Errorf("lookup dev account: %w", err)
	}

	return &domainauth.Principal{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}
