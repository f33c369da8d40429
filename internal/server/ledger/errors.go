package ledger

import "errors"

// Ошибки ledger сервиса. Вызывающий код различает их через errors.Is.
var (
	// ErrInvalidInput indicates a malformed content id, visitor id, vote or batch
	ErrInvalidInput = errors.New("invalid input")

	// ErrRetrieval indicates that counts could not be read; no partial result is returned
	ErrRetrieval = errors.New("failed to retrieve votes")

	// ErrWrite indicates that a ballot could not be persisted
	ErrWrite = errors.New("failed to save vote")
)
