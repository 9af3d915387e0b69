// Package auth implements the authorization-code exchange against the
// identity provider. Login and token issuance happen elsewhere; this client
// only turns the one-time code from the callback redirect into a session.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prohunt/prohunt/internal/domain/model"
	"github.com/prohunt/prohunt/pkg/logger"
)

// DefaultTimeout bounds a single token exchange.
const DefaultTimeout = 10 * time.Second

// Client exchanges authorization codes for sessions.
type Client struct {
	baseURL string
	timeout time.Duration
	httpc   *http.Client
	logger  logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout overrides the exchange deadline.
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

// NewClient creates an auth client for the provider at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		httpc:   &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Named("auth")
	}
	return c
}

// tokenResponse is the provider's token endpoint payload. Only the fields
// the session needs are decoded.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// ExchangeCode redeems the one-time authorization code for a session. Any
// failure, transport, non-2xx status, or a payload without a user id, is
// reported as ErrExchangeFailed since the callback handler treats them all
// the same way.
func (c *Client) ExchangeCode(ctx context.Context, code string) (model.Session, error) {
	if code == "" {
		return model.Session{}, fmt.Errorf("%w: empty code", ErrExchangeFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/token?grant_type=authorization_code"
	form := url.Values{"auth_code": {code}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn(ctx, "token exchange rejected",
			logger.Int("status", resp.StatusCode),
			logger.String("body", string(body)),
		)
		return model.Session{}, fmt.Errorf("%w: status %d", ErrExchangeFailed, resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return model.Session{}, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}
	if tok.User.ID == "" {
		return model.Session{}, fmt.Errorf("%w: response carries no user", ErrExchangeFailed)
	}

	return model.Session{
		UserID:      tok.User.ID,
		Email:       tok.User.Email,
		AccessToken: tok.AccessToken,
	}, nil
}
