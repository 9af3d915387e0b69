// Package worker drains the avatar upload queue, pushes each image to blob
// storage, and records the resulting URL on the owning profile.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/prohunt/prohunt/internal/adapters/mq/queue"
	"github.com/prohunt/prohunt/pkg/logger"
	"github.com/prohunt/prohunt/pkg/metrics"
)

// Default worker configuration constants.
const (
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Uploader writes an object and returns its public URL.
type Uploader interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// AvatarSetter records the uploaded avatar URL on a profile.
type AvatarSetter interface {
	SetAvatarURL(ctx context.Context, userID, url string) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker processes upload jobs until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining jobs before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing upload jobs.
type InMemoryWorker struct {
	queue    Queue
	uploader Uploader
	setter   AvatarSetter
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, uploader Uploader, setter AvatarSetter, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		uploader: uploader,
		setter:   setter,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "error processing upload", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob pushes one avatar to blob storage and records its URL.
func (w *InMemoryWorker) processJob(ctx context.Context, job queue.Job) error {
	start := time.Now()
	defer func() {
		metrics.RecordUploadLatency(float64(time.Since(start).Milliseconds()))
	}()

	url, err := w.uploader.Put(ctx, job.Key, job.Data, job.ContentType)
	if err != nil {
		metrics.RecordUploadFailure()
		metrics.RecordErrorByType("upload_error", "high")
		w.logger.Error(ctx, "blob upload failed",
			logger.String("user_id", job.UserID),
			logger.String("key", job.Key),
			logger.Error(err),
		)
		return fmt.Errorf("failed to upload avatar for %s: %w", job.UserID, err)
	}

	if err := w.setter.SetAvatarURL(ctx, job.UserID, url); err != nil {
		metrics.RecordUploadFailure()
		metrics.RecordErrorByType("avatar_update_error", "high")
		w.logger.Error(ctx, "avatar url update failed",
			logger.String("user_id", job.UserID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to record avatar url for %s: %w", job.UserID, err)
	}

	metrics.RecordUploadProcessed()
	w.logger.Debug(ctx, "avatar stored",
		logger.String("user_id", job.UserID),
		logger.String("url", url),
		logger.Duration("queued_for", start.Sub(job.SubmittedAt)),
	)
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q Queue, uploader Uploader, setter AvatarSetter) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    q,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			q,
			uploader,
			setter,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateUploadWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		select {
		case <-worker.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// Close the queue first so workers drain the backlog and stop.
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	metrics.UpdateUploadWorkerCount(0)

	return nil
}
