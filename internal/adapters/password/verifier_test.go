package password

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pennywise/pennywise-api/internal/domain/model"
	mockauth "github.com/pennywise/pennywise-api/internal/mocks/auth"
	"github.com/pennywise/pennywise-api/internal/ports"
)

func newTestVerifier(t *testing.T, users ...*model.User) *Verifier {
	t.Helper()
	v, err := NewVerifier(mockauth.NewMemoryUserDirectory(users...))
	require.NoError(t, err)
	return v
}

func hashOf(t *testing.T, secret string) string {
	t.Helper()
	// MinCost keeps the test fast; production hashing uses DefaultCost.
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestVerifier_Verify_Success(t *testing.T) {
	user := &model.User{
		ID:           "user-1",
		Username:     "jdoe",
		Name:         "Jane Doe",
		PasswordHash: hashOf(t, "hunter22"),
	}
	v := newTestVerifier(t, user)

	principal, err := v.Verify(context.Background(), "jdoe", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "user-1", principal.ID)
	assert.Equal(t, "jdoe", principal.Username)
	assert.Equal(t, "Jane Doe", principal.Name)
}

func TestVerifier_Verify_WrongPassword(t *testing.T) {
	user := &model.User{
		ID:           "user-1",
		Username:     "jdoe",
		PasswordHash: hashOf(t, "hunter22"),
	}
	v := newTestVerifier(t, user)

	principal, err := v.Verify(context.Background(), "jdoe", "wrong")
	assert.Nil(t, principal)
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestVerifier_Verify_UnknownHandle(t *testing.T) {
	v := newTestVerifier(t)

	principal, err := v.Verify(context.Background(), "nobody", "whatever")
	assert.Nil(t, principal)
	// Unknown handle is indistinguishable from a wrong password.
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestVerifier_Verify_UnknownHandleBurnsAComparison(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &model.User{ID: "user-1", Username: "jdoe", PasswordHash: string(hash)}
	v := newTestVerifier(t, user)
	ctx := context.Background()

	start := time.Now()
	_, err = v.Verify(ctx, "jdoe", "wrong")
	knownDur := time.Since(start)
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)

	start = time.Now()
	_, err = v.Verify(ctx, "nobody", "wrong")
	unknownDur := time.Since(start)
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)

	// Both failure paths run one bcrypt comparison at the same cost. If the
	// unknown-handle path skipped its comparison it would return orders of
	// magnitude faster, leaking account existence through timing.
	assert.Greater(t, unknownDur, knownDur/4,
		"unknown handles must cost a full comparison")
}

func TestVerifier_Verify_MalformedStoredHash(t *testing.T) {
	user := &model.User{
		ID:           "user-1",
		Username:     "jdoe",
		PasswordHash: "not-a-bcrypt-hash",
	}
	v := newTestVerifier(t, user)

	_, err := v.Verify(context.Background(), "jdoe", "hunter22")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestHashSecret_RoundTrip(t *testing.T) {
	hash, err := HashSecret("hunter22")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter22")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("other")))
}
