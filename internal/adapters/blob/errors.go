package blob

import "errors"

// ErrPutFailed is returned when an object could not be written to the
// backing bucket.
var ErrPutFailed = errors.New("failed to store object")
