package repository

import "errors"

// Sentinel kinds for store errors. ErrNotFound is the expected "no row"
// outcome; anything else coming out of the store is a real failure.
var (
	ErrNotFound = errors.New("record not found")
)
