package kvstore

import (
	"context"
)

// Slot is a durable key-value slot holding opaque bytes.
// LoadBytes returns nil, nil when the key has never been written.
type Slot interface {
	LoadBytes(ctx context.Context, key string) ([]byte, error)
	SaveBytes(ctx context.Context, key string, value []byte) error
}
