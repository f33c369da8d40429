package storage

import "errors"

// Common client storage errors
var (
	// ErrVotesNotFound indicates that no persisted votes exist for the store name
	ErrVotesNotFound = errors.New("persisted votes not found")

	// ErrIdentityNotFound indicates that no visitor identity is stored for the server
	ErrIdentityNotFound = errors.New("visitor identity not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
