// Package seeder fills a running site with generated events, team members,
// highlights and feedback through the public API, then reads the content
// back to check it landed.
package seeder

import "time"

// Config holds configuration for a seed run.
type Config struct {
	BaseURL    string        // Base URL of the site
	AdminToken string        // Bearer token for admin routes
	Events     int           // Number of events to create
	Team       int           // Number of team members to create
	Highlights int           // Number of highlights to create
	Feedback   int           // Number of feedback entries to submit
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Optional JSON dump of the generated payloads
	Verbose    bool          // Log every failed request
}

// Item is one API call the seeder will make.
type Item struct {
	Kind  string `json:"kind"`
	Path  string `json:"path"`
	Admin bool   `json:"admin"`
	Key   string `json:"idempotencyKey,omitempty"`
	Body  any    `json:"body"`
}

// AckResponse is the body of a duplicate feedback submission.
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Successful int
	Duplicate  int
	Failed     int
	Created    map[string]int
	Verified   map[string]int64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
