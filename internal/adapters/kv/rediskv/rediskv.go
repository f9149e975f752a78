// Package rediskv implements ports.KVStore on Redis. Keys are namespaced
// under a configurable prefix so the service shares an instance cleanly.
package rediskv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb    *redis.Client
	prefix string
}

func New(rdb *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "cardrender:"
	}
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) Provider() string { return "redis" }

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.prefix+key).Err()
}
