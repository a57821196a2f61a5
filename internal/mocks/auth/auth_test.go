package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/pennywise/pennywise-api/internal/domain/auth"
	"github.com/pennywise/pennywise-api/internal/domain/model"
	apperrors "github.com/pennywise/pennywise-api/internal/errors"
	"github.com/pennywise/pennywise-api/internal/ports"
)

func TestMockVerifier_Defaults(t *testing.T) {
	verifier := NewMockVerifier()
	ctx := context.Background()

	principal, err := verifier.Verify(ctx, "mockuser", "mockpass")
	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, "mock-user-1", principal.ID)
	assert.Equal(t, "mockuser", principal.Username)

	principal, err = verifier.Verify(ctx, "mockuser", "wrong")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
	assert.Nil(t, principal)

	principal, err = verifier.Verify(ctx, "nobody", "mockpass")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
	assert.Nil(t, principal)
}

func TestMockVerifier_CustomAccounts(t *testing.T) {
	verifier := &MockVerifier{
		Accounts: map[string]string{"alice": "secret"},
	}

	principal, err := verifier.Verify(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, "mock-alice", principal.ID)
	assert.Equal(t, "alice", principal.Username)
}

func TestMockVerifier_CustomFunc(t *testing.T) {
	wantErr := errors.New("verifier exploded")
	verifier := &MockVerifier{
		VerifyFunc: func(_ context.Context, _, _ string) (*domainauth.Principal, error) {
			return nil, wantErr
		},
	}

	principal, err := verifier.Verify(context.Background(), "mockuser", "mockpass")
	require.ErrorIs(t, err, wantErr)
	assert.Nil(t, principal)
}

func TestMemorySessionStore_SaveGetDelete(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	sess := domainauth.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	require.NoError(t, store.Save(ctx, sess))
	assert.Equal(t, 1, store.Len())
	assert.True(t, store.Has("sess-1"))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, store.Delete(ctx, "sess-1"))
	assert.False(t, store.Has("sess-1"))

	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestMemorySessionStore_EmptyID(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	err := store.Save(ctx, domainauth.Session{})
	require.Error(t, err)

	_, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	assert.NoError(t, store.Delete(ctx, ""))
}

func TestMemorySessionStore_FailWith(t *testing.T) {
	wantErr := errors.New("store unreachable")
	store := NewMemorySessionStore()
	store.FailWith = wantErr
	ctx := context.Background()

	err := store.Save(ctx, domainauth.Session{ID: "x"})
	assert.ErrorIs(t, err, wantErr)

	_, err = store.Get(ctx, "x")
	assert.ErrorIs(t, err, wantErr)
	assert.NotErrorIs(t, err, ports.ErrSessionNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "x"), wantErr)
}

func TestMemoryUserDirectory(t *testing.T) {
	user := &model.User{ID: "user-1", Username: "alice", Name: "Alice"}
	dir := NewMemoryUserDirectory(user)
	ctx := context.Background()

	got, err := dir.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	got, err = dir.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = dir.GetByID(ctx, "ghost")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	dir.Remove("user-1")
	_, err = dir.GetByUsername(ctx, "alice")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
