package devauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise/pennywise-api/internal/domain/model"
	mockauth "github.com/pennywise/pennywise-api/internal/mocks/auth"
	"github.com/pennywise/pennywise-api/internal/ports"
)

func devAccount() *model.User {
	return &model.User{ID: "user-dev-1", Username: "dev", Name: "Dev User"}
}

func TestNewVerifier_Validation(t *testing.T) {
	users := mockauth.NewMemoryUserDirectory(devAccount())

	_, err := NewVerifier(nil, Config{Username: "dev", Password: "devpass"})
	assert.Error(t, err)

	_, err = NewVerifier(users, Config{Password: "devpass"})
	assert.Error(t, err)

	_, err = NewVerifier(users, Config{Username: "dev"})
	assert.Error(t, err)

	v, err := NewVerifier(users, Config{Username: "dev", Password: "devpass"})
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestVerifier_Verify(t *testing.T) {
	users := mockauth.NewMemoryUserDirectory(devAccount())
	v, err := NewVerifier(users, Config{Username: "dev", Password: "devpass"})
	require.NoError(t, err)

	principal, err := v.Verify(context.Background(), "dev", "devpass")
	require.NoError(t, err)
	// Identity comes from the directory record, so sessions opened by this
	// verifier resolve to a real account on later requests.
	assert.Equal(t, "user-dev-1", principal.ID)
	assert.Equal(t, "dev", principal.Username)
	assert.Equal(t, "Dev User", principal.Name)

	_, err = v.Verify(context.Background(), "dev", "wrong")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = v.Verify(context.Background(), "other", "devpass")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestVerifier_UnprovisionedAccountIsAFault(t *testing.T) {
	users := mockauth.NewMemoryUserDirectory()
	v, err := NewVerifier(users, Config{Username: "dev", Password: "devpass"})
	require.NoError(t, err)

	principal, err := v.Verify(context.Background(), "dev", "devpass")
	assert.Nil(t, principal)
	require.Error(t, err)
	// Misconfiguration surfaces as a fault, not as bad credentials.
	assert.NotErrorIs(t, err, ports.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "not provisioned")
}
