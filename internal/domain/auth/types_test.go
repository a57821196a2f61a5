package auth

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Expired(t *testing.T) {
	now := time.Now()

	live := Session{ID: "s1", UserID: "u1", ExpiresAt: now.Add(time.Hour)}
	assert.False(t, live.Expired(now))

	dead := Session{ID: "s2", UserID: "u1", ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, dead.Expired(now))

	// Exactly at the boundary counts as still valid.
	edge := Session{ID: "s3", UserID: "u1", ExpiresAt: now}
	assert.False(t, edge.Expired(now))
}

func TestSession_JSONRoundTripOmitsNothingSecret(t *testing.T) {
	sess := Session{
		ID:        "abc",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	data, err := json.Marshal(sess)
	require.NoError(t, err)

	// The persisted payload holds only the key, the principal identifier,
	// and the expiry. No display attributes, no secret material.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 3)
	assert.Contains(t, raw, "id")
	assert.Contains(t, raw, "user_id")
	assert.Contains(t, raw, "expires_at")
}
