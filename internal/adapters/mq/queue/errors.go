package queue

import "errors"

// ErrQueueFull is reported by callers when an enqueue is rejected under
// backpressure.
var ErrQueueFull = errors.New("upload queue full")
