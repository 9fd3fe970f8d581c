package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrRemoteNoData marks a remote page that answered but has nothing for us
	// (typically a 4xx on a results page for a race that never ran).
	ErrRemoteNoData = errors.New("remote data not available")
)
