package recommend

import "errors"

// Sentinel kinds for recommendation client errors. Timeouts are kept
// distinct from server failures so callers can surface them differently.
var (
	ErrTimeout     = errors.New("recommendation request timed out")
	ErrUnavailable = errors.New("recommendation service unavailable")
	ErrBadResponse = errors.New("invalid response from recommendation service")
)
