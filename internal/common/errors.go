// Package common defines sentinel errors shared by the voyage log packages.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors raised by editor mutations.
	ErrorInvalidValue = errors.New("invalid value")
	ErrorOutOfRange   = errors.New("index out of range")

	// Export precondition errors. Both are user-visible notices, not faults.
	ErrNoPreview = errors.New("no preview found")
	ErrNoPages   = errors.New("no pages to export")

	// Snapshot files with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
