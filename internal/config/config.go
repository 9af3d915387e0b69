// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load() layers defaults, an optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatabasePath is the SQLite data source for the profile/project store.
	// ":memory:" keeps everything in-process.
	DatabasePath string `koanf:"database_path"`

	// SuggestLimit is the default cap on suggestion results.
	SuggestLimit int `koanf:"suggest_limit"`

	// MaxSuggestLimit caps GET /suggest?limit.
	MaxSuggestLimit int `koanf:"max_suggest_limit"`

	// RecommendURL is the endpoint of the external recommendation service.
	RecommendURL string `koanf:"recommend_url"`

	// RecommendTimeoutMS bounds a single recommendation request.
	RecommendTimeoutMS int `koanf:"recommend_timeout_ms"`

	// AuthBaseURL is the base URL of the external auth service used for
	// authorization-code exchange.
	AuthBaseURL string `koanf:"auth_base_url"`

	// AuthRedirectURL receives the browser after a successful callback.
	AuthRedirectURL string `koanf:"auth_redirect_url"`

	// AuthFailureURL receives the browser after a failed callback.
	AuthFailureURL string `koanf:"auth_failure_url"`

	// AvatarMaxBytes caps accepted avatar uploads.
	AvatarMaxBytes int64 `koanf:"avatar_max_bytes"`

	// UploadQueueSize bounds the in-memory avatar upload queue.
	UploadQueueSize int `koanf:"upload_queue_size"`

	// UploadWorkerCount sets the number of avatar upload workers.
	UploadWorkerCount int `koanf:"upload_worker_count"`

	// Blob store settings for avatar objects. Uploads stay disabled until
	// both credentials are present.
	BlobBucket        string `koanf:"blob_bucket"`
	BlobRegion        string `koanf:"blob_region"`
	BlobEndpoint      string `koanf:"blob_endpoint"`
	BlobPublicBaseURL string `koanf:"blob_public_base_url"`
	BlobAccessKey     string `koanf:"blob_access_key"`
	BlobSecretKey     string `koanf:"blob_secret_key"`
}

// Defaults mirror the original deployment: the recommendation service on
// localhost:5000 and a 10 second budget per request.
const (
	defaultSuggestLimit     = 10
	defaultMaxSuggestLimit  = 50
	defaultRecommendTimeout = 10_000
	defaultAvatarMaxBytes   = 5 << 20
	defaultUploadQueueSize  = 1024
)

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		DatabasePath:       "prohunt.db",
		SuggestLimit:       defaultSuggestLimit,
		MaxSuggestLimit:    defaultMaxSuggestLimit,
		RecommendURL:       "http://localhost:5000/recommend",
		RecommendTimeoutMS: defaultRecommendTimeout,
		AuthBaseURL:        "http://localhost:9999",
		AuthRedirectURL:    "/secure/dashboard",
		AuthFailureURL:     "/auth/login",
		AvatarMaxBytes:     defaultAvatarMaxBytes,
		UploadQueueSize:    defaultUploadQueueSize,
		UploadWorkerCount:  runtime.NumCPU(),
		BlobBucket:         "avatars",
		BlobRegion:         "us-east-1",
	}
}
