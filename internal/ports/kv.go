package ports

import "context"

// KVStore is the persistence capability behind the video metadata cache:
// string keys to string values, with absence distinguished from failure.
// Implementations (memkv, filekv, sqlitekv, rediskv, pgkv) are selected
// by configuration.
type KVStore interface {
	Provider() string

	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
