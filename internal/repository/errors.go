package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// Uniqueness or FK violation surfaced by the storage layer.
	ErrConflict = errors.New("conflict")
)
