package seeder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pranav-2399/nexus-website/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0640
)

// Sentinel errors.
var (
	ErrUnhealthy   = errors.New("site is not ready")
	ErrNoWork      = errors.New("nothing to seed")
	ErrNeedsToken  = errors.New("an admin token is required to seed events, team and highlights")
	ErrVerifyCount = errors.New("seeded content is missing")
)

// Run executes a complete seed: readiness check, generation, concurrent
// submission and read-back verification.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Get().Named("seeder")
	if cfg.Events+cfg.Team+cfg.Highlights+cfg.Feedback == 0 {
		return nil, ErrNoWork
	}
	if cfg.AdminToken == "" && cfg.Events+cfg.Team+cfg.Highlights > 0 {
		return nil, ErrNeedsToken
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	stats := &Stats{StartTime: time.Now()}
	log.Info(ctx, "starting seed",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("events", cfg.Events),
		logger.Int("team", cfg.Team),
		logger.Int("highlights", cfg.Highlights),
		logger.Int("feedback", cfg.Feedback),
		logger.Int("workers", cfg.Workers))

	if err := checkReady(ctx, cfg); err != nil {
		return nil, err
	}

	before, err := countContent(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("count before seeding: %w", err)
	}

	gen, err := NewGenerator(time.Now())
	if err != nil {
		return nil, err
	}
	items := gen.Items(cfg)
	stats.Generated = len(items)

	if cfg.OutputFile != "" {
		if err := saveItems(cfg.OutputFile, items); err != nil {
			log.Warn(ctx, "failed to save generated items", logger.Error(err))
		}
	}

	submitItems(ctx, cfg, items, stats)

	after, err := countContent(ctx, cfg)
	if err != nil {
		return stats, fmt.Errorf("count after seeding: %w", err)
	}
	stats.Verified = make(map[string]int64, len(after))
	for kind, n := range after {
		stats.Verified[kind] = n - before[kind]
	}
	if err := verifyCounts(ctx, before, after, stats.Created); err != nil {
		return stats, fmt.Errorf("%w: %v", ErrVerifyCount, err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return stats, nil
}

// checkReady verifies the site and its database answer.
func checkReady(ctx context.Context, cfg *Config) error {
	resp, err := newHTTPClient(cfg).do(ctx, http.MethodGet, "/readyz", nil, false, "")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnhealthy, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// saveItems writes the generated payloads as indented JSON.
func saveItems(filename string, items []Item) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	return os.WriteFile(filename, data, filePermission)
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, perSecond float64
	if stats.Submitted > 0 {
		successRate = float64(stats.Successful+stats.Duplicate) / float64(stats.Submitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Named("seeder").Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("failed", stats.Failed),
		logger.Any("verified", stats.Verified),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", perSecond))
}
