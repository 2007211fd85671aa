// Package settings persists named JSON settings records. The key material
// and the session secret live here, each under its own logical name, so a
// consumer can fetch either independently.
package settings

import "context"

type Repository interface {
	// Get returns the raw JSON value of the named record, or
	// common.ErrNotFound when the record does not exist.
	Get(ctx context.Context, name string) ([]byte, error)

	// Upsert inserts the named record or overwrites it in place.
	Upsert(ctx context.Context, name string, value []byte) error
}
