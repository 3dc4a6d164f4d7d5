package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"langpedia/internal/app"
)

// Store keeps one client's preferences in a Redis hash so they survive restarts and
// are shared across instances:
//
//	HSET langpedia:client:<id>:storage <key> <value>
//
// Every write refreshes the hash expiry.
type Store struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.HGet(ctx, s.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.key, key, value)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.HDel(ctx, s.key, key).Err()
}

// StoreProvider hands out Redis-backed stores keyed by client id.
type StoreProvider struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStoreProvider keeps idle client storage for ttl. A ttl of zero or less never expires.
func NewStoreProvider(client *redis.Client, ttl time.Duration) *StoreProvider {
	return &StoreProvider{client: client, ttl: ttl}
}

func (p *StoreProvider) StoreFor(clientID string) app.Store {
	return &Store{
		client: p.client,
		key:    "langpedia:client:" + clientID + ":storage",
		ttl:    p.ttl,
	}
}
