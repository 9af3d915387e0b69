package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/prohunt/prohunt/internal/adapters/auth"
	"github.com/prohunt/prohunt/internal/adapters/blob"
	"github.com/prohunt/prohunt/internal/adapters/http/api"
	"github.com/prohunt/prohunt/internal/adapters/http/site"
	"github.com/prohunt/prohunt/internal/adapters/http/swagger"
	"github.com/prohunt/prohunt/internal/adapters/recommend"
	service "github.com/prohunt/prohunt/internal/app"
	"github.com/prohunt/prohunt/internal/config"
	"github.com/prohunt/prohunt/pkg/logger"
	"github.com/prohunt/prohunt/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 30 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	systemMetricsInterval  = 10 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Local development convenience; a missing .env file is not an error.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	recommender := recommend.NewClient(cfg.RecommendURL,
		recommend.WithTimeout(time.Duration(cfg.RecommendTimeoutMS)*time.Millisecond),
		recommend.WithLogger(logger.Named("recommend")),
	)

	exchanger := auth.NewClient(cfg.AuthBaseURL,
		auth.WithLogger(logger.Named("auth")),
	)

	opts := []service.Option{
		service.WithLogger(log),
		service.WithDatabasePath(cfg.DatabasePath),
		service.WithRecommender(recommender),
		service.WithCodeExchanger(exchanger),
		service.WithSuggestLimit(cfg.SuggestLimit),
		service.WithMaxSuggestLimit(cfg.MaxSuggestLimit),
		service.WithAvatarMaxBytes(cfg.AvatarMaxBytes),
		service.WithUploadQueueSize(cfg.UploadQueueSize),
		service.WithUploadWorkerCount(cfg.UploadWorkerCount),
	}

	if uploader := buildUploader(ctx, cfg, log); uploader != nil {
		opts = append(opts, service.WithUploader(uploader))
	}

	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)

	apiServer := api.NewServer(svc, svc, api.AuthRedirects{
		Success: cfg.AuthRedirectURL,
		Failure: cfg.AuthFailureURL,
	})
	apiServer.Register(ctx, mux)

	// Static landing page last; it owns the "/" pattern.
	site.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// buildUploader constructs the avatar blob store when credentials are
// configured. Without credentials the service runs with uploads disabled.
func buildUploader(ctx context.Context, cfg *config.Config, log logger.Logger) blob.Store {
	if cfg.BlobAccessKey == "" || cfg.BlobSecretKey == "" {
		log.Warn(ctx, "blob credentials not configured; avatar uploads disabled")
		return nil
	}

	blobOpts := []blob.Option{
		blob.WithStaticCredentials(cfg.BlobAccessKey, cfg.BlobSecretKey),
		blob.WithLogger(logger.Named("blob")),
	}
	if cfg.BlobEndpoint != "" {
		blobOpts = append(blobOpts, blob.WithEndpoint(cfg.BlobEndpoint))
	}
	if cfg.BlobPublicBaseURL != "" {
		blobOpts = append(blobOpts, blob.WithPublicBaseURL(cfg.BlobPublicBaseURL))
	}

	store, err := blob.NewS3Store(ctx, cfg.BlobBucket, cfg.BlobRegion, blobOpts...)
	if err != nil {
		log.Error(ctx, "blob store unavailable; avatar uploads disabled", logger.Error(err))
		return nil
	}
	return store
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater starts a background goroutine that refreshes
// service-level gauges.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats updates the profile and project gauges as a
			// side effect.
			svc.GetStats()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
