package kvstore

import "cardrender/internal/ports"

// Provider is the key/value contract behind the video metadata cache.
// It is an alias to ports.KVStore to keep call-sites simple.
type Provider = ports.KVStore
