package token

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisRevocationStore keeps revoked token ids in Redis, expiring each entry
// together with the token it belongs to.
type RedisRevocationStore struct {
	client *redis.Client
}

func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.client.SetEX(ctx, "revoked:"+tokenID, "1", ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, "revoked:"+tokenID).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MemoryRevocationStore is a map-backed store for tests and single-process
// setups without Redis.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{revoked: map[string]time.Time{}}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deadline, ok := s.revoked[tokenID]
	return ok && time.Now().Before(deadline), nil
}
