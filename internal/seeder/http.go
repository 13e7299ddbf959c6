package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pranav-2399/nexus-website/pkg/logger"
)

// HTTPClient wraps http.Client with the admin token and timeout.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	token   string
}

func newHTTPClient(cfg *Config) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		token:   cfg.AdminToken,
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, admin bool, key string) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		rdr = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	return c.client.Do(req)
}

// getJSON performs a GET and decodes a 200 response into dst.
func (c *HTTPClient) getJSON(ctx context.Context, path string, admin bool, dst any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil, admin, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// submitItems posts items concurrently using a worker pool.
func submitItems(ctx context.Context, cfg *Config, items []Item, stats *Stats) {
	log := logger.Get().Named("seeder")
	log.Info(ctx, "submitting items", logger.Int("items", len(items)), logger.Int("workers", cfg.Workers))

	client := newHTTPClient(cfg)

	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	var (
		mu      sync.Mutex
		created = make(map[string]int, 4)
	)

	itemChan := make(chan Item, cfg.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range itemChan {
				result, err := submitSingleItem(ctx, client, item)
				atomic.AddInt64(&submitted, 1)
				switch result {
				case outcomeSuccess:
					atomic.AddInt64(&successful, 1)
					mu.Lock()
					created[item.Kind]++
					mu.Unlock()
				case outcomeDuplicate:
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&failed, 1)
					if cfg.Verbose {
						log.Warn(ctx, "submission failed", logger.String("kind", item.Kind), logger.Error(err))
					}
				}
			}
		}()
	}

	go func() {
		defer close(itemChan)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case itemChan <- item:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Successful = int(atomic.LoadInt64(&successful))
	stats.Duplicate = int(atomic.LoadInt64(&duplicate))
	stats.Failed = int(atomic.LoadInt64(&failed))
	stats.Created = created

	log.Info(ctx, "submission completed",
		logger.Int("successful", stats.Successful),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("failed", stats.Failed))
}

// submitSingleItem posts one item: 201 is success, a 200 duplicate ack is a
// duplicate, anything else failed.
func submitSingleItem(ctx context.Context, client *HTTPClient, item Item) (string, error) {
	start := time.Now()
	resp, err := client.do(ctx, http.MethodPost, item.Path, item.Body, item.Admin, item.Key)
	if err != nil {
		return outcomeFailed, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcomeFailed, err
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		return outcomeSuccess, nil
	case http.StatusOK:
		var ack AckResponse
		if err := json.Unmarshal(body, &ack); err == nil && ack.Duplicate {
			return outcomeDuplicate, nil
		}
		return outcomeSuccess, nil
	default:
		return outcomeFailed, fmt.Errorf("POST %s: status %d after %s: %s", item.Path, resp.StatusCode, time.Since(start), bytes.TrimSpace(body))
	}
}
