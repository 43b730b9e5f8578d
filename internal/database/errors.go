package database

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness violation (duplicate registration,
	// video already in playlist).
	ErrConflict = errors.New("already exists")
)
