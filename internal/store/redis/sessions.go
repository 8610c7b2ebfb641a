package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"lodgebot/internal/conversation"
)

const defaultSessionPrefix = "user:"

// Sessions implements conversation.SessionStore on Redis. Records are JSON
// values with a sliding TTL refreshed on every save.
type Sessions struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// SessionsOption customizes a Sessions store.
type SessionsOption func(*Sessions)

// WithSessionPrefix overrides the key prefix.
func WithSessionPrefix(prefix string) SessionsOption {
	return func(s *Sessions) { s.prefix = prefix }
}

// NewSessions builds the store around an existing client.
func NewSessions(client *backend.Client, ttl time.Duration, opts ...SessionsOption) *Sessions {
	s := &Sessions{
		client: client,
		prefix: defaultSessionPrefix,
		ttl:    ttl,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sessions) key(partyID string) string {
	return s.prefix + partyID
}

// Load retrieves the session for a party; a miss returns (nil, nil) so the
// engine starts a fresh record.
func (s *Sessions) Load(ctx context.Context, partyID string) (*conversation.Session, error) {
	val, err := s.client.Get(ctx, s.key(partyID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var sess conversation.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

// Save replaces the session record and refreshes its expiry.
func (s *Sessions) Save(ctx context.Context, sess conversation.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.PartyID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}
