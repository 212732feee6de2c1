package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisBlocklist backs the revocation set with Redis so it survives
// restarts and is shared across instances.
type RedisBlocklist struct {
	Client *redis.Client
}

func NewRedisBlocklist(client *redis.Client) *RedisBlocklist {
	return &RedisBlocklist{Client: client}
}

func (b *RedisBlocklist) key(jti string) string {
	return "revoked_token:" + jti
}

func (b *RedisBlocklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return b.Client.Set(ctx, b.key(jti), "1", ttl).Err()
}

func (b *RedisBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.Client.Exists(ctx, b.key(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryBlocklist keeps the revocation set in process memory. Revocations
// are lost on restart, which this deployment scope accepts; production
// setups run with Redis enabled instead.
type MemoryBlocklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

func NewMemoryBlocklist() *MemoryBlocklist {
	return &MemoryBlocklist{entries: make(map[string]time.Time)}
}

func (b *MemoryBlocklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[jti] = time.Now().Add(ttl)

	// Sweep expired entries while holding the lock; the set stays small
	// (one entry per logout within a token lifetime).
	now := time.Now()
	for id, exp := range b.entries {
		if exp.Before(now) {
			delete(b.entries, id)
		}
	}
	return nil
}

func (b *MemoryBlocklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	exp, ok := b.entries[jti]
	if !ok {
		return false, nil
	}
	return exp.After(time.Now()), nil
}
