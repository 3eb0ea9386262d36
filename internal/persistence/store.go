package persistence

import "context"

// Store loads and saves whole snapshots. Save overwrites all three
// collections together; implementations wrap failures in ErrStorageUnavailable.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}
