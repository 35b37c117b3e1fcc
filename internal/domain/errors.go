package domain

import "errors"

var (
	// ErrDimensionMismatch signals cosine similarity over vectors of unequal length.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingUnavailable signals an embedding provider failure or timeout.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	// ErrQueryTooLong signals a query exceeding the embedding text limit.
	ErrQueryTooLong = errors.New("query too long")
	// ErrInvalidInput signals malformed input at the pipeline boundary.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
