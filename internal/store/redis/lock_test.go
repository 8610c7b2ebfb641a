package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodgebot/internal/store/redis"
)

func TestLockerAcquireRelease(t *testing.T) {
	client, mr := newClient(t)
	locker := redis.NewLocker(client)
	ctx := context.Background()

	unlock, err := locker.Acquire(ctx, "263771000300", 5*time.Second)
	require.NoError(t, err)
	require.NotNil(t, unlock)
	assert.True(t, mr.Exists("lock:party:263771000300"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("lock:party:263771000300"))
}

func TestLockerContention(t *testing.T) {
	client, _ := newClient(t)
	locker := redis.NewLocker(client)
	ctx := context.Background()

	unlock, err := locker.Acquire(ctx, "party", 5*time.Second)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(waitCtx, "party", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))

	unlock2, err := locker.Acquire(ctx, "party", 5*time.Second)
	require.NoError(t, err)
	defer unlock2(ctx)
}

func TestLockerDistinctParties(t *testing.T) {
	client, _ := newClient(t)
	locker := redis.NewLocker(client)
	ctx := context.Background()

	unlockA, err := locker.Acquire(ctx, "party-a", 5*time.Second)
	require.NoError(t, err)
	defer unlockA(ctx)

	// A held lock for one party must not block another.
	unlockB, err := locker.Acquire(ctx, "party-b", 5*time.Second)
	require.NoError(t, err)
	defer unlockB(ctx)
}
