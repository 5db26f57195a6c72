package repository

import "errors"

var (
	// ErrNotFound is returned when no document or row matches.
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict is returned when a guarded write lost a race with
	// another writer. Callers re-read and retry.
	ErrVersionConflict = errors.New("version conflict")
)
