// Package metadata provides a small key/value store for client state that
// does not belong to any domain table: the active profile, cloud session
// tokens, and the sync cursor.
package metadata

import (
	"context"
)

// Well-known metadata keys.
const (
	KeyActiveProfile     = "active_profile"
	KeyCloudAccessToken  = "cloud_access_token"
	KeyCloudRefreshToken = "cloud_refresh_token"
	KeySyncCursor        = "sync_cursor"
)

// Repository describes operations on the metadata key/value store.
type Repository interface {
	// Get returns the value for key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// List returns every key/value pair.
	List(ctx context.Context) (map[string][]byte, error)

	// Clear removes all keys.
	Clear(ctx context.Context) error
}
