package persistence

import "errors"

var (
	// ErrStorageUnavailable is returned when the backing store cannot be read or written.
	ErrStorageUnavailable = errors.New("persistence: storage unavailable")
)
