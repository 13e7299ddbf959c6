package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"
	_ "time/tzdata" // event time zones must resolve on minimal images

	"github.com/NYTimes/gziphandler"
	"gorm.io/gorm"

	"github.com/pranav-2399/nexus-website/internal/adapters/http/api"
	"github.com/pranav-2399/nexus-website/internal/adapters/http/site"
	"github.com/pranav-2399/nexus-website/internal/adapters/http/swagger"
	"github.com/pranav-2399/nexus-website/internal/adapters/notify"
	"github.com/pranav-2399/nexus-website/internal/adapters/repository"
	"github.com/pranav-2399/nexus-website/internal/adapters/storage"
	app "github.com/pranav-2399/nexus-website/internal/app"
	"github.com/pranav-2399/nexus-website/internal/config"
	"github.com/pranav-2399/nexus-website/pkg/logger"
	"github.com/pranav-2399/nexus-website/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 30 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

const (
	multipartOverhead = 1 << 20
	galleryRequestCap = 64 << 20
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (.env -> defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.InitWithOptions(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	}); err != nil {
		os.Stderr.WriteString("failed to configure logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get().Named("main")

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "server exited with error", logger.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := repository.CloseDB(db); err != nil {
			log.Warn(ctx, "database close failed", logger.Error(err))
		}
	}()

	objects, media, err := newObjectStore(cfg)
	if err != nil {
		return err
	}
	notifier, err := newNotifier(cfg)
	if err != nil {
		return err
	}

	svc := newService(cfg, db, objects, notifier)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, svc, media),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("database", cfg.Database.Driver),
			logger.String("storage", cfg.Storage.Backend),
			logger.Bool("admin", cfg.AdminEnabled()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			svc.Stop()
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	// Drain queued deletes and notifications before the database closes.
	svc.Stop()
	log.Info(ctx, "server stopped")
	return nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	settings := repository.Settings{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}
	db, err := repository.NewDBConnection(settings, repository.WithLogger(logger.Get().Named("gorm")))
	if err != nil {
		return nil, err
	}
	if cfg.Database.Migrate {
		if err := repository.Migrate(ctx, db, settings); err != nil {
			_ = repository.CloseDB(db)
			return nil, err
		}
	}
	return db, nil
}

// newObjectStore returns the configured image store and, for the local
// backend, the handler that serves it under /media/.
func newObjectStore(cfg *config.Config) (storage.Store, http.Handler, error) {
	switch cfg.Storage.Backend {
	case "supabase":
		s, err := storage.NewSupabaseStore(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey, cfg.Storage.Bucket)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	case "local", "":
		s, err := storage.NewLocalStore(cfg.Storage.LocalDir, cfg.PublicBaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Handler(), nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", storage.ErrMissingBackend, cfg.Storage.Backend)
	}
}

func newNotifier(cfg *config.Config) (notify.Notifier, error) {
	if cfg.Notify.DiscordWebhookURL == "" {
		return notify.Noop{}, nil
	}
	return notify.NewDiscord(cfg.Notify.DiscordWebhookURL, cfg.Notify.Locale)
}

func newService(cfg *config.Config, db *gorm.DB, objects storage.Store, notifier notify.Notifier) *app.Service {
	return app.New(
		app.Repositories{
			Events:     repository.NewEventStore(db),
			Team:       repository.NewTeamStore(db),
			Highlights: repository.NewHighlightStore(db),
			Feedback:   repository.NewFeedbackStore(db),
		},
		app.WithWorkerCount(cfg.Jobs.WorkerCount),
		app.WithQueueSize(cfg.Jobs.QueueSize),
		app.WithDedupeSize(cfg.Feedback.DedupeSize),
		app.WithLocation(cfg.Location()),
		app.WithStatusRefreshInterval(cfg.StatusRefreshInterval),
		app.WithObjectStore(objects),
		app.WithNotifier(notifier),
		app.WithMaxUploadBytes(cfg.Storage.MaxUploadBytes),
		app.WithPublicBaseURL(cfg.PublicBaseURL),
		app.WithReadiness(func(ctx context.Context) error { return repository.Ping(ctx, db) }),
	)
}

// newHandler registers every route and wraps the mux in the shared middleware.
func newHandler(ctx context.Context, cfg *config.Config, svc *app.Service, media http.Handler) http.Handler {
	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)

	opts := []api.Option{
		api.WithAdminTokens(cfg.AdminTokens),
		// A gallery request carries many files; each is checked against the
		// per-file limit by the service.
		api.WithMaxUploadBytes(max(cfg.Storage.MaxUploadBytes+multipartOverhead, galleryRequestCap)),
	}
	if media != nil {
		opts = append(opts, api.WithMediaHandler(media))
	}
	api.NewServer(svc, opts...).Register(ctx, mux)

	log := logger.Get().Named("http")
	var h http.Handler = api.RecoverMiddleware(mux, log)
	h = api.LoggingMiddleware(h, log)
	h = api.CORSMiddleware(h, cfg.CORSAllowedOrigins)
	return gziphandler.GzipHandler(h)
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

// startServiceMetricsUpdater starts a background goroutine that updates service metrics.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics copies the service snapshot into gauges.
func updateServiceMetrics(svc *app.Service) {
	stats := svc.GetStats()

	if queueLen, ok := stats["queueLength"].(int); ok {
		metrics.UpdateQueueSize(queueLen)
	}
	if workerCount, ok := stats["workerCount"].(int); ok {
		metrics.UpdateWorkerCount(workerCount)
		if active, ok := stats["activeWorkers"].(int); ok {
			metrics.UpdateWorkerActiveCount(active)
			metrics.UpdateWorkerIdleCount(workerCount - active)
		}
	}
}
