package kvstore

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"cardrender/internal/adapters/kv/filekv"
	"cardrender/internal/adapters/kv/memkv"
	"cardrender/internal/adapters/kv/pgkv"
	"cardrender/internal/adapters/kv/rediskv"
	"cardrender/internal/adapters/kv/sqlitekv"
)

// NewProvider builds the KV provider named by KV_PROVIDER. Defaults to
// memory, which does not survive restarts; production deployments should
// pick file, sqlite, redis, or postgres.
func NewProvider(ctx context.Context) (Provider, error) {
	provider := os.Getenv("KV_PROVIDER")
	if provider == "" {
		provider = "memory"
	}

	switch provider {
	case "memory":
		return memkv.New(), nil

	case "file":
		root := mustEnv("KV_FILE_ROOT")
		return filekv.New(root), nil

	case "sqlite":
		path := mustEnv("KV_SQLITE_PATH")
		s, err := sqlitekv.New(path)
		if err != nil {
			return nil, err
		}
		return s, nil

	case "redis":
		addr := mustEnv("REDIS_ADDR")
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return rediskv.New(rdb, os.Getenv("REDIS_KEY_PREFIX")), nil

	case "postgres":
		dbURL := mustEnv("DATABASE_URL")
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		s, err := pgkv.New(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown kv provider: %s", provider)
	}
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
