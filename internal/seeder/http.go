package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prohunt/prohunt/internal/domain/analytics"
	"github.com/prohunt/prohunt/pkg/logger"
)

// checkServiceHealth verifies the target service answers before
// verification starts.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := &http.Client{Timeout: config.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.BaseURL+"/healthz", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("service unreachable at %s: %w", config.BaseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service healthy", logger.String("baseURL", config.BaseURL))
	return nil
}

// fetchDashboard retrieves the aggregated dashboard for a user.
func fetchDashboard(ctx context.Context, client *http.Client, baseURL, userID string) (analytics.Stats, error) {
	url := fmt.Sprintf("%s/dashboard?user_id=%s", baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return analytics.Stats{}, fmt.Errorf("failed to build dashboard request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return analytics.Stats{}, fmt.Errorf("dashboard request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return analytics.Stats{}, fmt.Errorf("unexpected dashboard status %d", resp.StatusCode)
	}

	var stats analytics.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return analytics.Stats{}, fmt.Errorf("failed to decode dashboard response: %w", err)
	}
	return stats, nil
}
