// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prohunt/prohunt/internal/adapters/mq/queue"
	workerpool "github.com/prohunt/prohunt/internal/adapters/mq/worker"
	"github.com/prohunt/prohunt/internal/adapters/recommend"
	"github.com/prohunt/prohunt/internal/adapters/repository"
	"github.com/prohunt/prohunt/internal/domain/analytics"
	"github.com/prohunt/prohunt/internal/domain/avatar"
	"github.com/prohunt/prohunt/internal/domain/model"
	"github.com/prohunt/prohunt/internal/domain/tags"
	"github.com/prohunt/prohunt/internal/domain/vocabulary"
	"github.com/prohunt/prohunt/pkg/logger"
	"github.com/prohunt/prohunt/pkg/metrics"
)

// Recommender fetches ranked candidates for a project.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) ([]model.Candidate, error)
}

// CodeExchanger redeems an authorization code for a session.
type CodeExchanger interface {
	ExchangeCode(ctx context.Context, code string) (model.Session, error)
}

// Uploader writes an object and returns its public URL.
type Uploader interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Service implements the API dependencies for the talent marketplace.
type Service struct {
	mu sync.RWMutex

	// Core components
	store       repository.Store
	recommender Recommender
	exchanger   CodeExchanger
	uploader    Uploader
	uploadQueue queue.Queue
	workerPool  *workerpool.Pool

	// Configuration
	databasePath    string
	suggestLimit    int
	maxSuggestLimit int
	avatarMaxBytes  int64
	queueSize       int
	workerCount     int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects an already-opened store instead of the default
// sqlite one.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDatabasePath sets the sqlite database path used when no store is
// injected.
func WithDatabasePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.databasePath = path
		}
	}
}

// WithRecommender sets the recommendation client.
func WithRecommender(r Recommender) Option {
	return func(s *Service) {
		if r != nil {
			s.recommender = r
		}
	}
}

// WithCodeExchanger sets the auth client used by the callback flow.
func WithCodeExchanger(e CodeExchanger) Option {
	return func(s *Service) {
		if e != nil {
			s.exchanger = e
		}
	}
}

// WithUploader sets the blob store that receives avatar images.
func WithUploader(u Uploader) Option {
	return func(s *Service) {
		if u != nil {
			s.uploader = u
		}
	}
}

// WithSuggestLimit sets the default number of suggestions per query.
func WithSuggestLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.suggestLimit = limit
		}
	}
}

// WithMaxSuggestLimit caps caller-supplied suggestion limits.
func WithMaxSuggestLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxSuggestLimit = limit
		}
	}
}

// WithAvatarMaxBytes sets the avatar payload size cap.
func WithAvatarMaxBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.avatarMaxBytes = n
		}
	}
}

// WithUploadQueueSize sets the maximum size of the upload queue.
func WithUploadQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithUploadWorkerCount sets the number of upload worker goroutines.
func WithUploadWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		databasePath:    "prohunt.db",
		suggestLimit:    vocabulary.DefaultLimit,
		maxSuggestLimit: 50,
		avatarMaxBytes:  avatar.MaxBytes,
		queueSize:       1024,
		workerCount:     runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting marketplace service...")

	if s.store == nil {
		store, err := repository.NewSQLiteStore(s.databasePath)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		s.store = store
		s.logger.Info(ctx, "using sqlite store", logger.String("path", s.databasePath))
	}

	s.uploadQueue = queue.NewInMemoryQueue(
		queue.WithCapacity(s.queueSize),
		queue.WithBufferSize(s.queueSize),
	)

	if s.uploader != nil {
		s.workerPool = workerpool.NewPool(s.workerCount, s.uploadQueue, s.uploader, s.store)
		s.workerPool.Start(ctx)
	} else {
		s.logger.Warn(ctx, "no blob store configured, avatar uploads disabled")
	}

	s.started = true
	s.logger.Info(ctx, "marketplace service started",
		logger.Int("uploadWorkers", s.workerCount),
		logger.Int("uploadQueueSize", s.queueSize),
		logger.Int("suggestLimit", s.suggestLimit),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping marketplace service...")

	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	} else if s.uploadQueue != nil {
		_ = s.uploadQueue.Close()
	}

	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(ctx, "marketplace service stopped")
}

// Suggest returns up to limit vocabulary entries matching the query. An
// empty query yields an empty list without touching the matcher; the
// as-you-type flow only asks once there is input. A non-positive limit
// falls back to the configured default, and any limit is clamped to the
// configured maximum.
func (s *Service) Suggest(ctx context.Context, kind vocabulary.Kind, query string, limit int) ([]string, error) {
	start := time.Now()
	defer func() {
		metrics.RecordSuggestLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	vocab, ok := vocabulary.ByKind(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVocabulary, kind)
	}

	metrics.RecordSuggestQuery(string(kind))

	if strings.TrimSpace(query) == "" {
		return []string{}, nil
	}

	if limit <= 0 {
		limit = s.suggestLimit
	}
	if limit > s.maxSuggestLimit {
		limit = s.maxSuggestLimit
	}

	return vocab.Filter(query, limit), nil
}

// CreateProject stores a new project, assigning an id and filling
// unset attributes with the stock defaults.
func (s *Service) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.ApplyDefaults()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.store.CreateProject(ctx, p); err != nil {
		return model.Project{}, err
	}
	return p, nil
}

// GetProject returns a stored project by id.
func (s *Service) GetProject(ctx context.Context, id string) (model.Project, error) {
	return s.store.GetProject(ctx, id)
}

// ListProjects returns the projects created by a user, oldest first.
func (s *Service) ListProjects(ctx context.Context, createdBy string) ([]model.Project, error) {
	return s.store.ListProjectsByCreator(ctx, createdBy)
}

// UpdateProject overwrites a stored project's attributes. The creator and
// creation time are immutable; the stored row is re-read so the response
// reflects them.
func (s *Service) UpdateProject(ctx context.Context, p model.Project) (model.Project, error) {
	p.ApplyDefaults()
	p.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateProject(ctx, p); err != nil {
		return model.Project{}, err
	}
	return s.store.GetProject(ctx, p.ID)
}

// DeleteProject removes a stored project.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	return s.store.DeleteProject(ctx, id)
}

// Dashboard aggregates a user's projects into dashboard statistics.
func (s *Service) Dashboard(ctx context.Context, userID string) (analytics.Stats, error) {
	records, err := s.store.ListProjectsByCreator(ctx, userID)
	if err != nil {
		return analytics.Stats{}, err
	}
	return analytics.Aggregate(records), nil
}

// Recommendations fetches ranked candidates for a project, excluding the
// requesting user from the result.
func (s *Service) Recommendations(ctx context.Context, projectID, userID string) ([]model.Candidate, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.recommender.Recommend(ctx, recommend.NewRequest(project))
	if err != nil {
		return nil, err
	}

	out := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == userID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// ExchangeAndEnsure completes the auth callback: the code becomes a
// session and a profile row is created for first-time users. The created
// flag reports whether a new profile was inserted.
func (s *Service) ExchangeAndEnsure(ctx context.Context, code string) (model.Session, bool, error) {
	session, err := s.exchanger.ExchangeCode(ctx, code)
	if err != nil {
		return model.Session{}, false, err
	}

	created, err := s.store.EnsureProfile(ctx, session.UserID, session.Email)
	if err != nil {
		return model.Session{}, false, fmt.Errorf("failed to ensure profile for %s: %w", session.UserID, err)
	}
	if created {
		s.logger.Info(ctx, "profile created on first login", logger.String("user_id", session.UserID))
	}
	return session, created, nil
}

// GetProfile returns a stored profile by id.
func (s *Service) GetProfile(ctx context.Context, id string) (model.Profile, error) {
	return s.store.GetProfile(ctx, id)
}

// UpdateProfile overwrites a stored profile.
func (s *Service) UpdateProfile(ctx context.Context, p model.Profile) (model.Profile, error) {
	if err := s.store.UpdateProfile(ctx, p); err != nil {
		return model.Profile{}, err
	}
	return s.store.GetProfile(ctx, p.ID)
}

// AddSkill appends a skill to the profile's list. Duplicates are kept;
// the list mirrors exactly what the user picked, in order.
func (s *Service) AddSkill(ctx context.Context, userID, skill string) ([]string, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := tags.Select(skill, p.Skills)
	if err := s.store.SetProfileSkills(ctx, userID, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveSkill removes the skill at the given position. An out-of-range
// index is an error, never a silent no-op.
func (s *Service) RemoveSkill(ctx context.Context, userID string, index int) ([]string, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated, err := tags.Remove(index, p.Skills)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetProfileSkills(ctx, userID, updated); err != nil {
		return nil, err
	}
	return []string(updated), nil
}

// AddPreferredDomain appends a domain to the profile's preference list.
func (s *Service) AddPreferredDomain(ctx context.Context, userID, domain string) ([]string, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := tags.Select(domain, p.PreferredDomains)
	if err := s.store.SetProfilePreferredDomains(ctx, userID, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// RemovePreferredDomain removes the domain at the given position.
func (s *Service) RemovePreferredDomain(ctx context.Context, userID string, index int) ([]string, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated, err := tags.Remove(index, p.PreferredDomains)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetProfilePreferredDomains(ctx, userID, updated); err != nil {
		return nil, err
	}
	return []string(updated), nil
}

// AvatarMaxBytes reports the configured cap on avatar payloads so the
// transport layer can bound its body reads to the same limit.
func (s *Service) AvatarMaxBytes() int64 {
	return s.avatarMaxBytes
}

// EnqueueAvatar validates the image and hands it to the upload pipeline.
// The profile must exist; validation failures surface the avatar package
// sentinels and a saturated queue surfaces ErrUploadQueueSaturated.
func (s *Service) EnqueueAvatar(ctx context.Context, userID string, data []byte) error {
	if s.uploader == nil {
		return ErrUploadsUnavailable
	}

	if _, err := s.store.GetProfile(ctx, userID); err != nil {
		return err
	}

	contentType, err := avatar.Validate(data, s.avatarMaxBytes)
	if err != nil {
		return err
	}

	job := queue.Job{
		UserID:      userID,
		Key:         fmt.Sprintf("%s/%s.%s", userID, uuid.NewString(), avatar.Extension(contentType)),
		ContentType: contentType,
		Data:        data,
		SubmittedAt: time.Now(),
	}
	if !s.uploadQueue.Enqueue(ctx, job) {
		return ErrUploadQueueSaturated
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":           s.started,
		"uploadWorkerCount": s.workerCount,
		"uploadQueueSize":   s.queueSize,
		"suggestLimit":      s.suggestLimit,
	}

	if s.started {
		stats["uploadQueueLength"] = s.uploadQueue.Len(ctx)
		stats["uploadsEnabled"] = s.uploader != nil

		if profiles, err := s.store.CountProfiles(ctx); err == nil {
			stats["totalProfiles"] = profiles
			metrics.UpdateTotalProfiles(profiles)
		}
		if projects, err := s.store.CountProjects(ctx); err == nil {
			stats["totalProjects"] = projects
			metrics.UpdateTotalProjects(projects)
		}
	}

	return stats
}
