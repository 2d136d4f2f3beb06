package usage

import "context"

// Store persists quota records. Get returns ok=false when the user has
// no record yet; Put upserts.
type Store interface {
	Get(ctx context.Context, userID string) (Record, bool, error)
	Put(ctx context.Context, rec Record) error
}
