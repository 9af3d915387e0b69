package avatar

import "errors"

// Sentinel kinds for avatar validation failures.
var (
	ErrTooLarge        = errors.New("avatar exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported avatar type")
)
