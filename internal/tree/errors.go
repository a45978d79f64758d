package tree

import "errors"

var (
	// ErrSourceRootMissing indicates the configured source root does not exist.
	ErrSourceRootMissing = errors.New("source root not found")

	// ErrNotDirectory indicates the source root exists but is not a directory.
	ErrNotDirectory = errors.New("source root is not a directory")

	// ErrWalkFailed indicates filesystem traversal of the source tree failed.
	ErrWalkFailed = errors.New("source tree walk failed")
)
