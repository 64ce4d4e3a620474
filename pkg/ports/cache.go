package ports

import "context"

// DocumentCache stores encoded documents keyed by a digest of source and format.
// Conversion is deterministic, so an entry never goes stale; TTLs only bound size.
type DocumentCache interface {
	// Get returns the cached bytes.
	// Returns domain.ErrCacheMiss if the key is not stored.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
