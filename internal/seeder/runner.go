package seeder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prohunt/prohunt/internal/adapters/repository"
	"github.com/prohunt/prohunt/internal/domain/model"
	"github.com/prohunt/prohunt/pkg/logger"
)

// Run executes a complete seeding pass: create profiles and projects,
// then optionally verify dashboard aggregation against a running service.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting prohunt seeding",
		logger.String("db", config.DatabasePath),
		logger.Int("users", config.NumUsers),
		logger.Int("projectsPerUser", config.ProjectsPerUser),
		logger.Int("workers", config.Workers),
	)

	store, err := repository.NewSQLiteStore(config.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	userIDs, err := seedUsers(ctx, config, store, stats)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	if config.BaseURL != "" {
		if err := checkServiceHealth(ctx, config); err != nil {
			return fmt.Errorf("service health check failed: %w", err)
		}
		if err := verifyDashboards(ctx, config, store, userIDs, stats); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return nil
}

// seedUsers creates the demo profiles and their projects using a worker
// pool, one user per task.
func seedUsers(ctx context.Context, config *Config, store repository.Store, stats *Stats) ([]string, error) {
	userIDs := make([]string, config.NumUsers)
	for i := range userIDs {
		userIDs[i] = generateProfileID(i)
	}

	workerCount := minInt(config.Workers, config.NumUsers)
	if workerCount < 1 {
		workerCount = 1
	}

	tasks := make(chan string, config.NumUsers)
	errs := make(chan error, config.NumUsers)

	var created sync.Map
	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for userID := range tasks {
				if err := seedOneUser(ctx, config, store, userID, &created); err != nil {
					errs <- err
					return
				}
			}
		}()
	}

	for _, id := range userIDs {
		tasks <- id
	}
	close(tasks)
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return nil, err
	}

	stats.ProfilesCreated = config.NumUsers
	stats.ProjectsCreated = config.NumUsers * config.ProjectsPerUser
	logger.Get().Info(ctx, "seeding complete",
		logger.Int("profiles", stats.ProfilesCreated),
		logger.Int("projects", stats.ProjectsCreated),
	)
	return userIDs, nil
}

func seedOneUser(ctx context.Context, config *Config, store repository.Store, userID string, created *sync.Map) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled during seeding: %w", ctx.Err())
	default:
	}

	if _, err := store.EnsureProfile(ctx, userID, userID+"@demo.prohunt.dev"); err != nil {
		return fmt.Errorf("failed to create profile %s: %w", userID, err)
	}

	projects := make([]model.Project, 0, config.ProjectsPerUser)
	for i := 0; i < config.ProjectsPerUser; i++ {
		p := generateProject(userID, i)
		now := time.Now().UTC()
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := store.CreateProject(ctx, p); err != nil {
			return fmt.Errorf("failed to create project for %s: %w", userID, err)
		}
		projects = append(projects, p)
	}
	created.Store(userID, projects)

	if config.Verbose {
		logger.Get().Debug(ctx, "seeded user",
			logger.String("userID", userID),
			logger.Int("projects", len(projects)),
		)
	}
	return nil
}

// displayFinalStats logs the run summary.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "seeding run finished",
		logger.Int("profilesCreated", stats.ProfilesCreated),
		logger.Int("projectsCreated", stats.ProjectsCreated),
		logger.Int("usersVerified", stats.UsersVerified),
		logger.Int("verifyFailures", stats.VerifyFailures),
		logger.Duration("duration", stats.Duration),
	)
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
