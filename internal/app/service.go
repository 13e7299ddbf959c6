// Package service provides the core business service behind the HTTP API:
// content CRUD over the repositories, image uploads and the background jobs
// that clean up objects and send notifications.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/pranav-2399/nexus-website/internal/adapters/mq/queue"
	workerpool "github.com/pranav-2399/nexus-website/internal/adapters/mq/worker"
	"github.com/pranav-2399/nexus-website/internal/adapters/notify"
	"github.com/pranav-2399/nexus-website/internal/adapters/repository"
	"github.com/pranav-2399/nexus-website/internal/adapters/storage"
	"github.com/pranav-2399/nexus-website/internal/domain/dedupe"
	"github.com/pranav-2399/nexus-website/internal/domain/model"
	"github.com/pranav-2399/nexus-website/pkg/logger"
	"github.com/pranav-2399/nexus-website/pkg/metrics"
)

const (
	defaultWorkerCount     = 4
	defaultQueueSize       = 1024
	defaultDedupeSize      = 10_000
	defaultMaxUploadBytes  = 10 << 20
	defaultRefreshInterval = time.Minute
	stopTimeout            = 10 * time.Second
)

// Repositories groups the content stores the service reads and writes.
type Repositories struct {
	Events     repository.EventStore
	Team       repository.TeamStore
	Highlights repository.HighlightStore
	Feedback   repository.FeedbackStore
}

// Service implements the API dependencies for the club site.
type Service struct {
	mu sync.RWMutex

	repos    Repositories
	objects  storage.Store
	notifier notify.Notifier
	deduper  dedupe.Deduper
	jobs     jobqueue.Queue
	pool     *workerpool.Pool
	ready    func(ctx context.Context) error

	// Configuration
	workerCount     int
	queueSize       int
	dedupeSize      int
	maxUpload       int64
	refreshInterval time.Duration
	loc             *time.Location
	now             func() time.Time
	publicURL       string

	// State
	started bool
	cancel  context.CancelFunc
	stopCh  chan struct{}
	doneCh  chan struct{}

	logger logger.Logger
}

// New constructs a Service over repos.
func New(repos Repositories, opts ...Option) *Service {
	s := &Service{
		repos:           repos,
		notifier:        notify.Noop{},
		workerCount:     defaultWorkerCount,
		queueSize:       defaultQueueSize,
		dedupeSize:      defaultDedupeSize,
		maxUpload:       defaultMaxUploadBytes,
		refreshInterval: defaultRefreshInterval,
		loc:             time.UTC,
		now:             time.Now,
		ready:           func(context.Context) error { return nil },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	return s
}

// Start brings up the job queue, the worker pool and the status refresher.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting site service...")

	// Jobs outlive the caller's context; only Stop ends them, after the drain.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.jobs = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)
	s.pool = workerpool.NewPool(s.workerCount, s.jobs, s, workerpool.WithPoolLogger(s.logger.Named("jobs")))
	s.pool.Start(runCtx)

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.refreshLoop(runCtx, s.stopCh, s.doneCh)

	s.started = true
	s.logger.Info(ctx, "site service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Duration("statusRefresh", s.refreshInterval),
	)
	return nil
}

// Stop halts the refresher and drains pending jobs.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping site service...")

	close(s.stopCh)
	<-s.doneCh

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "job pool did not drain", logger.Error(err))
	}
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "site service stopped")
}

func (s *Service) refreshLoop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	if s.refreshInterval <= 0 {
		return
	}

	s.RefreshStatuses(ctx)
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			s.RefreshStatuses(ctx)
		}
	}
}

// RefreshStatuses flips upcoming events whose start has passed.
func (s *Service) RefreshStatuses(ctx context.Context) int64 {
	n, err := s.repos.Events.MarkPast(ctx, s.now())
	if err != nil {
		s.logger.Error(ctx, "status refresh failed", logger.Error(err))
		metrics.RecordErrorByComponent("service", "status_refresh")
		return 0
	}
	if n > 0 {
		metrics.RecordEventsMarkedPast(n)
		s.logger.Info(ctx, "events moved to past", logger.Int64("count", n))
	}
	return n
}

// Ready reports whether the backing database answers.
func (s *Service) Ready(ctx context.Context) error {
	return s.ready(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.deduper.Size(),
	}
	if s.started {
		stats["queueLength"] = s.jobs.Len(context.Background())
		stats["activeWorkers"] = s.pool.Active()
	}
	return stats
}

// enqueue hands a job to the workers. It returns false when the service is
// not running or the queue is full.
func (s *Service) enqueue(ctx context.Context, job model.Job) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job.ID = uuid.NewString()
	if !s.started {
		return false
	}
	if !s.jobs.Enqueue(ctx, job) {
		s.logger.Warn(ctx, "job dropped",
			logger.String("kind", string(job.Kind)),
			logger.Error(jobqueue.ErrFull),
		)
		return false
	}
	return true
}

// deleteObjects schedules removal of every URL that points into the object
// store. Foreign URLs are left alone.
func (s *Service) deleteObjects(ctx context.Context, urls []string) {
	if s.objects == nil {
		return
	}
	for _, u := range urls {
		name, ok := s.objects.NameFromURL(u)
		if !ok {
			continue
		}
		if !s.enqueue(ctx, model.Job{Kind: model.JobDeleteObject, Object: name}) {
			if err := s.DeleteObject(ctx, name); err != nil {
				s.logger.Warn(ctx, "object cleanup failed", logger.String("object", name), logger.Error(err))
			}
		}
	}
}

func (s *Service) notify(ctx context.Context, n *model.Notification) {
	if _, noop := s.notifier.(notify.Noop); noop {
		return
	}
	if !s.enqueue(ctx, model.Job{Kind: model.JobNotify, Notification: n}) {
		metrics.RecordNotification(n.Topic, "dropped")
	}
}

// DeleteObject removes an object; it is the worker handler for delete jobs.
func (s *Service) DeleteObject(ctx context.Context, name string) error {
	if s.objects == nil {
		return ErrNoObjectStore
	}
	return s.objects.Delete(ctx, name)
}

// Notify sends n; it is the worker handler for notify jobs.
func (s *Service) Notify(ctx context.Context, n *model.Notification) error {
	if err := s.notifier.Notify(ctx, n); err != nil {
		metrics.RecordNotification(n.Topic, "error")
		return err
	}
	metrics.RecordNotification(n.Topic, "sent")
	return nil
}

// removed returns the entries of before that are not in after.
func removed(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, u := range after {
		keep[u] = struct{}{}
	}
	var out []string
	for _, u := range before {
		if _, ok := keep[u]; !ok {
			out = append(out, u)
		}
	}
	return out
}

func (s *Service) eventLink(slug string) string {
	if s.publicURL == "" {
		return ""
	}
	return strings.TrimRight(s.publicURL, "/") + "/events/" + slug
}
