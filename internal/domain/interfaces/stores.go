package interfaces

import "context"

// KVStore is the persistent key-value storage that survives restarts.
// Get reports ok=false for a missing key; Delete of a missing key is not an error.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
