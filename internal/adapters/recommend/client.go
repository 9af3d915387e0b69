// Package recommend implements the HTTP client for the external
// recommendation service. The ranking algorithm lives entirely on the other
// side of this boundary; this package only speaks the request/response
// contract and normalizes what comes back.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prohunt/prohunt/internal/domain/model"
	"github.com/prohunt/prohunt/pkg/logger"
	"github.com/prohunt/prohunt/pkg/metrics"
)

// DefaultTimeout bounds a single recommendation request end to end.
const DefaultTimeout = 10 * time.Second

// Request is the wire shape expected by POST /recommend.
type Request struct {
	ProjectID        int      `json:"project_id"`
	ProjectName      string   `json:"project_name"`
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	Complexity       string   `json:"complexity"`
	Location         string   `json:"location"`
	Shift            string   `json:"shift"`
	CompensationType string   `json:"compensation_type"`
	Domain           string   `json:"domain"`
}

// NewRequest builds a Request from a stored project, filling omitted
// attributes with the stock defaults.
func NewRequest(p model.Project) Request {
	p.ApplyDefaults()
	return Request{
		ProjectID:        numericProjectID(p.ID),
		ProjectName:      p.Name,
		RequiredSkills:   p.RequiredSkills,
		PreferredSkills:  p.PreferredSkills,
		Complexity:       p.Complexity,
		Location:         p.Location,
		Shift:            p.Shift,
		CompensationType: p.CompensationType,
		Domain:           p.Domain,
	}
}

// numericProjectID derives the integer id the service expects from a UUID:
// the first three characters of the dash-stripped id when they parse as a
// number, otherwise a stable hash in [0,1000).
func numericProjectID(id string) int {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) >= 3 {
		if n, err := strconv.Atoi(compact[:3]); err == nil {
			return n
		}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return int(h.Sum32() % 1000)
}

// Client calls the external recommendation service.
type Client struct {
	url     string
	timeout time.Duration
	httpc   *http.Client
	logger  logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout overrides the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a recommendation client for url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:     url,
		timeout: DefaultTimeout,
		httpc:   &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Named("recommend")
	}
	return c
}

// Recommend posts the project attributes and returns the normalized,
// ranked candidate list. The request races the configured deadline; a
// deadline hit surfaces as ErrTimeout, distinguishable from ErrUnavailable
// (transport or non-2xx failures) and ErrBadResponse (non-array body).
// The parent ctx still governs cancellation, so a torn-down caller aborts
// the request instead of applying a late response.
func (c *Client) Recommend(ctx context.Context, req Request) ([]model.Candidate, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recommendation request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build recommendation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	metrics.RecordRecommendRequest()
	start := time.Now()
	resp, err := c.httpc.Do(httpReq)
	metrics.RecordRecommendLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			metrics.RecordRecommendTimeout()
			return nil, fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
		}
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("recommendation request canceled: %w", err)
		}
		metrics.RecordRecommendFailure()
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.RecordRecommendFailure()
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordRecommendFailure()
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		metrics.RecordRecommendFailure()
		return nil, fmt.Errorf("%w: body is not a JSON array", ErrBadResponse)
	}

	candidates := normalize(entries)
	metrics.RecordRecommendCandidates(len(candidates))
	c.logger.Debug(ctx, "recommendation response normalized",
		logger.Int("raw", len(entries)),
		logger.Int("kept", len(candidates)),
	)
	return candidates, nil
}

// normalize keeps entries carrying both a user id and a name, coercing the
// remaining fields with fallback defaults the way the consuming UI always
// has.
func normalize(entries []map[string]any) []model.Candidate {
	out := make([]model.Candidate, 0, len(entries))
	for _, e := range entries {
		id := asString(e["user_id"])
		name := asString(e["name"])
		if id == "" || name == "" {
			continue
		}
		out = append(out, model.Candidate{
			ID:                id,
			Name:              name,
			Skills:            asStringSlice(e["skills"]),
			MatchScore:        asFloat(e["predicted_score"]),
			Certifications:    asStringSlice(e["certifications"]),
			Location:          stringOr(e["location"], model.DefaultLocation),
			Availability:      stringOr(e["availability"], "Available"),
			ProjectsCompleted: asInt(e["projects_completed"]),
			Feedback:          asFloat(e["feedback"]),
		})
	}
	return out
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func stringOr(v any, fallback string) string {
	if s := asString(v); s != "" {
		return s
	}
	return fallback
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := asString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return 0
}

func asInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	}
	return 0
}
