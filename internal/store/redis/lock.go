package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

const defaultLockPrefix = "lock:party:"

// releaseScript deletes the lock key only when the holder token matches, so
// an expired lock reacquired by another worker is never released by us.
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// UnlockFunc releases a held lock.
type UnlockFunc func(ctx context.Context) error

// Locker serializes webhook handling per party with a Redis SET NX PX lock.
// The engine's read-modify-write cycle is not transactional, so concurrent
// deliveries for one party must funnel through this.
type Locker struct {
	client *backend.Client
	prefix string
	// retry is the polling interval while the lock is contended.
	retry time.Duration
}

// NewLocker builds a locker around an existing client.
func NewLocker(client *backend.Client) *Locker {
	return &Locker{
		client: client,
		prefix: defaultLockPrefix,
		retry:  50 * time.Millisecond,
	}
}

// Acquire blocks until the party lock is held or ctx expires. The ttl bounds
// how long a crashed holder can wedge the party's conversation.
func (l *Locker) Acquire(ctx context.Context, partyID string, ttl time.Duration) (UnlockFunc, error) {
	key := l.prefix + partyID
	token := fmt.Sprintf("%d", time.Now().UnixNano())

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis acquire lock: %w", err)
		}
		if ok {
			return func(ctx context.Context) error {
				return l.client.Eval(ctx, releaseScript, []string{key}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
