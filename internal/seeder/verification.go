package seeder

import (
	"context"
	"fmt"

	"github.com/pranav-2399/nexus-website/pkg/logger"
)

const verifyLimit = 200

type listEnvelope[T any] struct {
	Data T `json:"data"`
}

type teamEnvelope struct {
	Teams []map[string]any `json:"teams"`
}

type feedbackPage struct {
	Total int64 `json:"total"`
}

// countContent reads back how many of each kind the site now holds. Lists
// are capped at verifyLimit, which is enough to confirm a seed run.
func countContent(ctx context.Context, cfg *Config) (map[string]int64, error) {
	client := newHTTPClient(cfg)
	counts := make(map[string]int64, 4)

	var events listEnvelope[[]map[string]any]
	if err := client.getJSON(ctx, fmt.Sprintf("/api/events?limit=%d", verifyLimit), false, &events); err != nil {
		return nil, err
	}
	counts[KindEvent] = int64(len(events.Data))

	var team teamEnvelope
	if err := client.getJSON(ctx, "/api/teams", false, &team); err != nil {
		return nil, err
	}
	counts[KindTeam] = int64(len(team.Teams))

	var highlights listEnvelope[[]map[string]any]
	if err := client.getJSON(ctx, fmt.Sprintf("/api/highlights?limit=%d", verifyLimit), false, &highlights); err != nil {
		return nil, err
	}
	counts[KindHighlight] = int64(len(highlights.Data))

	if cfg.AdminToken != "" {
		var fb listEnvelope[feedbackPage]
		if err := client.getJSON(ctx, "/api/feedback?limit=1", true, &fb); err != nil {
			return nil, err
		}
		counts[KindFeedback] = fb.Data.Total
	}
	return counts, nil
}

// verifyCounts checks that each kind grew by at least the number of
// successful submissions, allowing for the list cap.
func verifyCounts(ctx context.Context, before, after map[string]int64, want map[string]int) error {
	log := logger.Get().Named("seeder")
	for kind, n := range want {
		got, ok := after[kind]
		if !ok {
			continue
		}
		grew := got - before[kind]
		expected := int64(n)
		if got >= verifyLimit && kind != KindFeedback {
			expected = min(expected, verifyLimit-before[kind])
		}
		if grew < expected {
			return fmt.Errorf("%s: expected at least %d new, found %d", kind, expected, grew)
		}
		log.Info(ctx, "verified", logger.String("kind", kind), logger.Int64("new", grew))
	}
	return nil
}
