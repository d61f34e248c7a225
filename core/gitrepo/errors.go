package gitrepo

import "errors"

// Common errors returned by repository operations.
var (
	ErrEmptyURL        = errors.New("repository URL cannot be empty")
	ErrEmptyRepoID     = errors.New("repository id cannot be empty")
	ErrInvalidRevision = errors.New("invalid revision identifier")
	ErrFileNotFound    = errors.New("file not found in working copy")
)
