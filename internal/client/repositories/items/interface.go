// Package items persists opaque sealed blobs keyed by name. It is the storage
// layer under the secure credential store and never sees plaintext.
package items

import "context"

type Repository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
