package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_RevokeThenCheck(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "signed.jwt.token", time.Hour))

	revoked, err := store.IsRevoked(ctx, "signed.jwt.token")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestSessionStore_UnknownTokenNotRevoked(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewSessionStore(client)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "never.seen.token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestSessionStore_ExpiredTokenSkipsDenylist(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewSessionStore(client)
	ctx := context.Background()

	// An already-expired token fails validation on its own; recording it
	// would just be a key that lives forever.
	require.NoError(t, store.Revoke(ctx, "expired.jwt.token", -time.Minute))

	revoked, err := store.IsRevoked(ctx, "expired.jwt.token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestSessionStore_EntryExpiresWithToken(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "short.lived.token", time.Second))

	s.FastForward(2 * time.Second)

	revoked, err := store.IsRevoked(ctx, "short.lived.token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestPasswordResetStore_SeparateFromVerification(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	otpStore := NewOTPStore(client)
	resetStore := NewPasswordResetStore(client)
	ctx := context.Background()

	require.NoError(t, otpStore.Store(ctx, "ada@example.com", "111111", 10*time.Minute))
	require.NoError(t, resetStore.Store(ctx, "ada@example.com", "222222", 15*time.Minute))

	// A verification code cannot pass as a reset code and vice versa.
	ok, err := resetStore.Consume(ctx, "ada@example.com", "111111")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = otpStore.Consume(ctx, "ada@example.com", "222222")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = resetStore.Consume(ctx, "ada@example.com", "222222")
	require.NoError(t, err)
	assert.True(t, ok)
}
