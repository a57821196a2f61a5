package password

// Package password verifies login credentials against locally stored bcrypt
// hashes.

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	domainauth "github.com/pennywise/pennywise-api/internal/domain/auth"
	apperrors "github.com/pennywise/pennywise-api/internal/errors"
	"github.com/pennywise/pennywise-api/internal/ports"
)

// Verifier checks a username/password pair against the user directory.
// Unknown handles and wrong passwords are indistinguishable to the caller:
// both cost one bcrypt comparison and both return ErrInvalidCredentials.
type Verifier struct {
	users ports.UserDirectory

	// dummyHash is compared against when the handle is unknown so the
	// response time does not reveal whether the account exists.
	dummyHash []byte
}

// NewVerifier creates a password verifier backed by the given user directory.
func NewVerifier(users ports.UserDirectory) (*Verifier, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}
	return &Verifier{users: users, dummyHash: dummy}, nil
}

// Verify checks the credentials and returns the matching principal.
func (v *Verifier) Verify(ctx context.Context, handle, secret string) (*domainauth.Principal, error) {
	user, err := v.users.GetByUsername(ctx, handle)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// Burn a comparison so unknown and known handles take the
			// same time, then fail uniformly.
			_ = bcrypt.CompareHashAndPassword(v.dummyHash, []byte(secret))
			return nil, ports.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if compareErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)); compareErr != nil {
		if errors.Is(compareErr, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ports.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("compare password: %w", compareErr)
	}

	return &domainauth.Principal{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

// HashSecret hashes a plaintext secret for storage.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
