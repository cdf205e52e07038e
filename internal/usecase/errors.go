package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidIdentifier     = errors.New("invalid match identifier")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInsufficientTeams     = errors.New("at least two registered teams are required")
	ErrStoreUnavailable      = errors.New("backing store temporarily unavailable")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
