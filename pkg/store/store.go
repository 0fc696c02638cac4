// Package store is the blob storage boundary: one opaque durable value per
// (device, category) key, whole-object overwrite on every put.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get for a key that was never written. Callers
// that serve dashboards map it to an empty sequence, not an error.
var ErrNotFound = errors.New("record blob not found")

type Store interface {
	Put(ctx context.Context, deviceID string, category string, blob []byte) error
	Get(ctx context.Context, deviceID string, category string) ([]byte, error)
}

func Key(deviceID string, category string) string {
	return fmt.Sprintf("%s_%s", deviceID, category)
}
