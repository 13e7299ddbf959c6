// Package worker runs background jobs pulled off the queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/pranav-2399/nexus-website/internal/adapters/mq/queue"
	"github.com/pranav-2399/nexus-website/internal/domain/model"
	"github.com/pranav-2399/nexus-website/pkg/logger"
	"github.com/pranav-2399/nexus-website/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount    = 4
	defaultJobTimeout     = 30 * time.Second
	metricsUpdateInterval = 5 * time.Second
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// ErrUnknownJob is returned for a job kind no handler method covers.
var ErrUnknownJob = errors.New("unknown job kind")

// Job is what workers read off the queue.
type Job = queue.Job

// Handler performs the side effects jobs describe.
type Handler interface {
	DeleteObject(ctx context.Context, name string) error
	Notify(ctx context.Context, n *model.Notification) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes jobs using the provided handler.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue      Queue
	handler    Handler
	name       string
	jobTimeout time.Duration

	// busy is shared with the pool for active/idle gauges.
	busy *atomic.Int64

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, handler Handler, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:      queue,
		handler:    handler,
		name:       "worker",
		jobTimeout: defaultJobTimeout,
		busy:       &atomic.Int64{},
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				w.logger.Error(ctx, "job failed",
					logger.String("job_id", job.ID),
					logger.String("kind", string(job.Kind)),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process runs one job. Failures are counted and not retried.
func (w *InMemoryWorker) process(ctx context.Context, job Job) (err error) { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	w.busy.Add(1)
	start := time.Now()
	defer func() {
		w.busy.Add(-1)
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		kind := string(job.Kind)
		metrics.RecordWorkerJob(kind, float64(time.Since(start).Milliseconds()))
		if err != nil {
			metrics.RecordWorkerError(kind)
			metrics.RecordErrorByComponent("worker", kind)
		}
	}()

	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	switch job.Kind {
	case model.JobDeleteObject:
		if job.Object == "" {
			return fmt.Errorf("%w: delete without object", ErrUnknownJob)
		}
		err = w.handler.DeleteObject(jobCtx, job.Object)
	case model.JobNotify:
		if job.Notification == nil {
			return fmt.Errorf("%w: notify without payload", ErrUnknownJob)
		}
		err = w.handler.Notify(jobCtx, job.Notification)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownJob, job.Kind)
	}
	if err == nil {
		w.logger.Debug(ctx, "job done",
			logger.String("job_id", job.ID),
			logger.String("kind", string(job.Kind)),
			logger.Duration("took", time.Since(start)),
		)
	}
	return err
}

// Pool manages multiple workers.
type Pool struct {
	workers    []*InMemoryWorker
	queue      Queue
	busy       atomic.Int64
	jobTimeout time.Duration

	shutdown chan struct{}
	stopped  atomic.Bool

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, handler Handler, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	pool := &Pool{
		workers:    make([]*InMemoryWorker, workerCount),
		queue:      queue,
		jobTimeout: defaultJobTimeout,
		shutdown:   make(chan struct{}),
		logger:     logger.Get().Named("worker-pool"),
	}
	for _, opt := range opts {
		opt(pool)
	}

	for i := 0; i < workerCount; i++ {
		w := NewInMemoryWorker(
			queue,
			handler,
			WithName("worker-"+strconv.Itoa(i)),
			WithLogger(pool.logger),
			WithJobTimeout(pool.jobTimeout),
		)
		w.busy = &pool.busy
		pool.workers[i] = w
	}

	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActiveCount(0)
	metrics.UpdateWorkerIdleCount(workerCount)

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Active returns the number of workers currently running a job.
func (p *Pool) Active() int { return int(p.busy.Load()) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	go p.startMetricsUpdater(ctx)
}

func (p *Pool) startMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(metricsUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.C:
			p.updateMetrics()
		}
	}
}

func (p *Pool) updateMetrics() {
	active := p.Active()
	metrics.UpdateWorkerActiveCount(active)
	metrics.UpdateWorkerIdleCount(len(p.workers) - active)
}

// Stop signals all workers and waits briefly for each.
func (p *Pool) Stop() {
	if !p.stopped.CompareAndSwap(false, true) {
		return
	}
	close(p.shutdown)
	for _, w := range p.workers {
		close(w.shutdown)
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown closes the queue and lets workers drain it before returning.
func (p *Pool) Shutdown(ctx context.Context) error {
	if !p.stopped.CompareAndSwap(false, true) {
		return nil
	}
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}
	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var timedOut bool
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			timedOut = true
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	p.updateMetrics()
	if timedOut {
		return fmt.Errorf("worker pool shutdown: %w", shutdownCtx.Err())
	}
	return nil
}
