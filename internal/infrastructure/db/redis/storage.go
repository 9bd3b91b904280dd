package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/ports"
)

const sessionKeyPrefix = "portal:session:"

// StorageProvider keeps each session scope in its own Redis hash.
// Key format: portal:session:<scope id>
// The hash expires after ttl without writes or opens.
type StorageProvider struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStorageProvider wraps client; ttl <= 0 disables expiry.
func NewStorageProvider(client *redis.Client, ttl time.Duration) *StorageProvider {
	return &StorageProvider{client: client, ttl: ttl}
}

var _ ports.StorageProvider = (*StorageProvider)(nil)

// Open returns the scope's storage and pushes its expiry out.
func (p *StorageProvider) Open(ctx context.Context, id string) (ports.Storage, error) {
	s := &Storage{client: p.client, key: sessionKeyPrefix + id, ttl: p.ttl}
	if err := s.touch(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Storage is one session scope.
type Storage struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func (s *Storage) Get(ctx context.Context, field string) (string, bool, error) {
	v, err := s.client.HGet(ctx, s.key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("hget", err)
	}
	return v, true, nil
}

func (s *Storage) Set(ctx context.Context, field, value string) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.key, field, value)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("hset", err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, s.key, fields...).Err(); err != nil {
		return unavailable("hdel", err)
	}
	return nil
}

func (s *Storage) touch(ctx context.Context) error {
	if s.ttl <= 0 {
		return nil
	}
	// EXPIRE on a missing key is a no-op; the first Set creates it.
	if err := s.client.Expire(ctx, s.key, s.ttl).Err(); err != nil {
		return unavailable("expire", err)
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: redis %s: %v", domain.ErrStorageUnavailable, op, err)
}
