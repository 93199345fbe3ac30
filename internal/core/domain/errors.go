package domain

import "errors"

var (
	// ErrNotFound indicates a requested file, folder or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a create was skipped because the target exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrMissingEnv indicates a required environment variable is unset.
	ErrMissingEnv = errors.New("missing environment variable")

	// ErrAuthRequired indicates no stored credential was found for a provider.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates a stored credential was rejected by the provider.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrTokenRefreshFailed indicates a refresh-token grant was rejected.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// ErrNoFrontMatter indicates a note has no YAML front-matter block.
	ErrNoFrontMatter = errors.New("no front matter")

	// ErrPropertyMissing indicates an expected front-matter or body property
	// is absent from a note.
	ErrPropertyMissing = errors.New("property missing")

	// ErrCycleDatesUnset indicates the cycle dates have never been seeded.
	ErrCycleDatesUnset = errors.New("cycle dates unset")

	// ErrLockHeld indicates another process holds the cycle-resolver lock.
	ErrLockHeld = errors.New("lock held by another process")

	// ErrEmptyResponse indicates the language model returned no content.
	ErrEmptyResponse = errors.New("empty model response")
)
