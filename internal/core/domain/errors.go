package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthRequired indicates a write was attempted without a token.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the held token was rejected by the remote.
	ErrAuthInvalid = errors.New("authentication invalid")
)
