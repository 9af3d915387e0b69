package seeder

import (
	"context"
	"fmt"
	"net/http"
	"reflect"

	"github.com/prohunt/prohunt/internal/adapters/repository"
	"github.com/prohunt/prohunt/internal/domain/analytics"
	"github.com/prohunt/prohunt/pkg/logger"
)

// verifyDashboards fetches each seeded user's dashboard from the running
// service and compares it to an aggregation computed from the database
// directly. A mismatch means the serving path disagrees with the stored
// data, so it fails the run.
func verifyDashboards(ctx context.Context, config *Config, store repository.Store, userIDs []string, stats *Stats) error {
	client := &http.Client{Timeout: config.Timeout}

	for _, userID := range userIDs {
		records, err := store.ListProjectsByCreator(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list projects for %s: %w", userID, err)
		}
		expected := analytics.Aggregate(records)

		got, err := fetchDashboard(ctx, client, config.BaseURL, userID)
		if err != nil {
			return fmt.Errorf("failed to fetch dashboard for %s: %w", userID, err)
		}

		if !reflect.DeepEqual(expected, got) {
			stats.VerifyFailures++
			logger.Get().Warn(ctx, "dashboard mismatch",
				logger.String("userID", userID),
				logger.Any("expected", expected),
				logger.Any("got", got),
			)
			continue
		}
		stats.UsersVerified++

		if config.Verbose {
			logger.Get().Debug(ctx, "dashboard verified",
				logger.String("userID", userID),
				logger.Int("total", got.Total),
				logger.Int("completed", got.Completed),
				logger.Int("active", got.Active),
			)
		}
	}

	if stats.VerifyFailures > 0 {
		return fmt.Errorf("%d of %d dashboards did not match", stats.VerifyFailures, len(userIDs))
	}

	logger.Get().Info(ctx, "all dashboards verified", logger.Int("users", stats.UsersVerified))
	return nil
}
