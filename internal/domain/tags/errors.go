package tags

import "errors"

// Sentinel kinds for tag set errors.
var (
	ErrIndexOutOfRange = errors.New("tag index out of range")
)
