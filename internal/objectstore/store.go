package objectstore

import (
	"context"
	"time"
)

// Store is the object storage the client uploads invoice files to.
type Store interface {
	// PresignUpload returns a time-limited URL granting one PUT of the
	// object at key.
	PresignUpload(ctx context.Context, key string, expires time.Duration) (string, error)

	// Fetch returns the object body.
	Fetch(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object.
	Delete(ctx context.Context, key string) error
}
