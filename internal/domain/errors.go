package domain

import "errors"

var (
	// ErrInvalidConfig reports invalid parameters or input, detected
	// before any service call is made.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoDocuments reports a document directory with zero eligible files.
	ErrNoDocuments = errors.New("no documents found")

	// ErrUnreadableFile reports a file that could not be decoded as text.
	// The loader skips such files and continues.
	ErrUnreadableFile = errors.New("unreadable file")

	// ErrEmbeddingService wraps failures from the embedding provider,
	// including rate limits and network faults.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrGenerationService wraps failures from the text generation provider.
	ErrGenerationService = errors.New("generation service error")
)
