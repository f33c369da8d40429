package storage

import "errors"

// Common storage errors
var (
	// ErrBallotNotFound indicates that the visitor has no ballot for the content item
	ErrBallotNotFound = errors.New("ballot not found")

	// ErrInvalidBallot indicates a ballot value outside of {+1, -1}
	ErrInvalidBallot = errors.New("invalid ballot value")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
