package service

import (
	"context"
	"time"

	"github.com/pranav-2399/nexus-website/internal/adapters/notify"
	"github.com/pranav-2399/nexus-website/internal/adapters/storage"
	"github.com/pranav-2399/nexus-website/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of job workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many feedback idempotency keys are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLocation sets the zone event dates and times are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithNow replaces the clock.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithStatusRefreshInterval sets how often stale upcoming events are flipped
// to past. Zero disables the refresher.
func WithStatusRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.refreshInterval = d
		}
	}
}

// WithObjectStore sets where uploaded images go.
func WithObjectStore(store storage.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.objects = store
		}
	}
}

// WithNotifier sets the outbound notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithMaxUploadBytes caps a single uploaded file.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

// WithPublicBaseURL is used to build links in notifications.
func WithPublicBaseURL(u string) Option {
	return func(s *Service) { s.publicURL = u }
}

// WithReadiness sets the check behind Ready, usually a database ping.
func WithReadiness(check func(ctx context.Context) error) Option {
	return func(s *Service) {
		if check != nil {
			s.ready = check
		}
	}
}
