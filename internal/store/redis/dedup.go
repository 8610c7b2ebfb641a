package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

const (
	defaultDedupPrefix   = "dedup:"
	defaultDedupCapacity = 5
)

// Dedup implements conversation.DedupFilter with a capacity-bounded Redis
// list of the most recently seen delivery ids per party, most-recent-last.
type Dedup struct {
	client   *backend.Client
	prefix   string
	ttl      time.Duration
	capacity int
}

// DedupOption customizes a Dedup filter.
type DedupOption func(*Dedup)

// WithDedupCapacity overrides how many recent delivery ids are retained.
func WithDedupCapacity(n int) DedupOption {
	return func(d *Dedup) {
		if n > 0 {
			d.capacity = n
		}
	}
}

// WithDedupPrefix overrides the key prefix.
func WithDedupPrefix(prefix string) DedupOption {
	return func(d *Dedup) { d.prefix = prefix }
}

// NewDedup builds the filter around an existing client.
func NewDedup(client *backend.Client, ttl time.Duration, opts ...DedupOption) *Dedup {
	d := &Dedup{
		client:   client,
		prefix:   defaultDedupPrefix,
		ttl:      ttl,
		capacity: defaultDedupCapacity,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dedup) key(partyID string) string {
	return d.prefix + partyID
}

// Seen reports whether the delivery id is in the party's recent-id list.
// Absence of the record counts as "not a duplicate".
func (d *Dedup) Seen(ctx context.Context, partyID, deliveryID string) (bool, error) {
	ids, err := d.client.LRange(ctx, d.key(partyID), 0, -1).Result()
	if err != nil {
		if err == backend.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis lrange dedup: %w", err)
	}
	for _, id := range ids {
		if id == deliveryID {
			return true, nil
		}
	}
	return false, nil
}

// Record appends the delivery id, evicting the oldest entries past capacity,
// and refreshes the record's short expiry.
func (d *Dedup) Record(ctx context.Context, partyID, deliveryID string) error {
	key := d.key(partyID)
	pipe := d.client.Pipeline()
	pipe.RPush(ctx, key, deliveryID)
	pipe.LTrim(ctx, key, int64(-d.capacity), -1)
	pipe.Expire(ctx, key, d.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis record dedup: %w", err)
	}
	return nil
}
