package storage

import "cardrender/internal/ports"

// Provider is the artifact storage contract used by the API handlers.
// It is an alias to ports.StorageProvider to keep call-sites simple.
type Provider = ports.StorageProvider
