package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionCreateAndVerify(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStoreWithClock(24*time.Hour, func() time.Time { return now })

	token, expiresAt := store.Create()

	require.Len(t, token, 64, "token should be 32 bytes hex encoded")
	require.Equal(t, now.Add(24*time.Hour), expiresAt)

	res := store.Verify(token)
	require.True(t, res.Valid)
	require.Equal(t, expiresAt, res.ExpiresAt)
	require.Equal(t, now, res.LastActivity)
}

func TestSessionTokensAreUnique(t *testing.T) {
	store := NewSessionStore(24 * time.Hour)

	a, _ := store.Create()
	b, _ := store.Create()
	require.NotEqual(t, a, b)
}

func TestSessionExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStoreWithClock(24*time.Hour, func() time.Time { return now })

	token, _ := store.Create()

	// One second before expiry the session is still live.
	now = now.Add(24*time.Hour - time.Second)
	require.True(t, store.Verify(token).Valid)

	// At expiry it is not.
	now = now.Add(time.Second)
	require.False(t, store.Verify(token).Valid)

	// And the expired record was dropped.
	require.Equal(t, 0, store.Len())
}

func TestSessionVerifyBumpsLastActivity(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStoreWithClock(24*time.Hour, func() time.Time { return now })

	token, _ := store.Create()

	now = now.Add(2 * time.Hour)
	res := store.Verify(token)
	require.True(t, res.Valid)
	require.Equal(t, now, res.LastActivity)
}

func TestSessionVerifyUnknownToken(t *testing.T) {
	store := NewSessionStore(24 * time.Hour)
	require.False(t, store.Verify("no-such-token").Valid)
}

func TestSessionRevokeIsIdempotent(t *testing.T) {
	store := NewSessionStore(24 * time.Hour)

	token, _ := store.Create()
	store.Revoke(token)
	require.False(t, store.Verify(token).Valid)

	// Revoking again must not panic or error.
	store.Revoke(token)
	store.Revoke("never-existed")
}

func TestSessionSweepExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStoreWithClock(time.Hour, func() time.Time { return now })

	store.Create()
	store.Create()
	require.Equal(t, 2, store.Len())

	now = now.Add(2 * time.Hour)
	store.SweepExpired()
	require.Equal(t, 0, store.Len())
}

func TestSessionCreateSweepsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStoreWithClock(time.Hour, func() time.Time { return now })

	stale, _ := store.Create()

	now = now.Add(2 * time.Hour)
	fresh, _ := store.Create()

	require.Equal(t, 1, store.Len())
	require.False(t, store.Verify(stale).Valid)
	require.True(t, store.Verify(fresh).Valid)
}
