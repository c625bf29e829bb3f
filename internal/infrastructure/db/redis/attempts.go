package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptStore counts failed sign-ins in Redis so lockout state is shared
// across replicas. Key format: signin_attempts:<login>; the key TTL is the
// lockout window, so expiry discards the window without extra bookkeeping.
type AttemptStore struct {
	client *redis.Client
}

func NewAttemptStore(client *redis.Client) *AttemptStore {
	return &AttemptStore{client: client}
}

// Fail increments the counter, starting the window on the first failure.
// INCR and EXPIRE NX run in one MULTI/EXEC block so a counter can never be
// created without a TTL; NX also re-arms the TTL if a key ever lost it.
func (s *AttemptStore) Fail(ctx context.Context, login string, _ time.Time, window time.Duration) (int, error) {
	key := s.key(login)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("attempt incr: %w", err)
	}
	return int(incr.Val()), nil
}

func (s *AttemptStore) Count(ctx context.Context, login string, _ time.Time, _ time.Duration) (int, error) {
	n, err := s.client.Get(ctx, s.key(login)).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("attempt get: %w", err)
	}
	return n, nil
}

func (s *AttemptStore) Reset(ctx context.Context, login string) error {
	return s.client.Del(ctx, s.key(login)).Err()
}

func (s *AttemptStore) key(login string) string {
	return fmt.Sprintf("signin_attempts:%s", login)
}
