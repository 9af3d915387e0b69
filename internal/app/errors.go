package service

import "errors"

// Sentinel kinds for service-level failures.
var (
	ErrNotStarted           = errors.New("service not started")
	ErrUnknownVocabulary    = errors.New("unknown vocabulary kind")
	ErrUploadsUnavailable   = errors.New("avatar uploads unavailable")
	ErrUploadQueueSaturated = errors.New("avatar upload queue saturated")
)
