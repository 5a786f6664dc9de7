package ports

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned by Get when no value exists for a key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Port: an opaque key-value store used to hand a print snapshot across
// an execution context boundary (main view to print view). The engine
// only produces and consumes snapshot values, never the transport.
type SnapshotStore interface {
	Put(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
}
