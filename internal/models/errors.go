package models

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a uniqueness constraint was violated (e.g. tmdb_id)
	ErrDuplicate = errors.New("duplicate record")

	// ErrValidation indicates the input was malformed or out of range
	ErrValidation = errors.New("validation failed")

	// ErrNotImplemented indicates the operation has no real implementation yet
	ErrNotImplemented = errors.New("not implemented")
)
