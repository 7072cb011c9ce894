// Package metadata is the client's named-slot table. The session layer keeps
// the fallback bearer token here.
package metadata

import "context"

// Repository reads and writes named slots. An absent slot is reported as
// found=false with a nil error.
type Repository interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
