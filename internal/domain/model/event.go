// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Event statuses. Status is derived from the start time on every save.
const (
	StatusUpcoming = "upcoming"
	StatusPast     = "past"
)

const (
	timeLayout  = "15:04"
	defaultTime = "00:00"
)

// Event is a club event as shown on the public site and edited in the admin
// dashboard. JSON keys match what the site's front end reads.
type Event struct {
	ID               string       `json:"id"`
	Slug             string       `json:"slug"`
	Title            string       `json:"title" validate:"required,max=200"`
	Description      string       `json:"description" validate:"max=20000"`
	DescriptionHTML  string       `json:"descriptionHtml,omitempty"`
	Date             string       `json:"date" validate:"required,datestr"`
	Time             string       `json:"time" validate:"omitempty,hhmm"`
	Location         string       `json:"location" validate:"max=200"`
	BannerImage      string       `json:"bannerImage" validate:"omitempty,weblink"`
	PosterImage      string       `json:"posterImage" validate:"omitempty,weblink"`
	IsPinned         bool         `json:"isPinned"`
	Status           string       `json:"status"`
	Gallery          []string     `json:"gallery" validate:"dive,weblink"`
	Stats            []Stat       `json:"stats" validate:"dive"`
	Participants     string       `json:"participants" validate:"max=200"`
	Outcomes         []string     `json:"outcomes" validate:"dive,max=500"`
	SocialPosts      []SocialPost `json:"socialPosts" validate:"dive"`
	Results          []Result     `json:"results" validate:"dive"`
	RegistrationLink string       `json:"registrationLink" validate:"omitempty,weblink"`
	StartsAt         time.Time    `json:"startsAt"`
	Countdown        *Countdown   `json:"countdown,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// Stat is a headline number shown on an event page, e.g. {"Teams", "40"}.
type Stat struct {
	Label string `json:"label" validate:"required,max=100"`
	Value string `json:"value" validate:"max=100"`
}

// SocialPost links to coverage of the event on a social platform.
type SocialPost struct {
	Platform string `json:"platform" validate:"required,max=50"`
	URL      string `json:"url" validate:"required,weblink"`
}

// Result is one placing in a competition event.
type Result struct {
	Pos  string `json:"pos" validate:"max=20"`
	Name string `json:"name" validate:"required,max=200"`
	URL  string `json:"url" validate:"omitempty,weblink"`
}

// Countdown is the time left until an event starts.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9_-]+`)
	dashRun       = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a title into a URL path segment.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = dashRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "event"
	}
	return s
}

// Normalize trims text fields and replaces nil lists with empty ones so the
// stored record and the JSON response never carry nulls.
func (e *Event) Normalize() {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	e.Date = strings.TrimSpace(e.Date)
	e.Time = strings.TrimSpace(e.Time)
	e.Location = strings.TrimSpace(e.Location)
	e.BannerImage = strings.TrimSpace(e.BannerImage)
	e.PosterImage = strings.TrimSpace(e.PosterImage)
	e.Participants = strings.TrimSpace(e.Participants)
	e.RegistrationLink = strings.TrimSpace(e.RegistrationLink)
	if e.Gallery == nil {
		e.Gallery = []string{}
	}
	if e.Stats == nil {
		e.Stats = []Stat{}
	}
	if e.Outcomes == nil {
		e.Outcomes = []string{}
	}
	if e.SocialPosts == nil {
		e.SocialPosts = []SocialPost{}
	}
	if e.Results == nil {
		e.Results = []Result{}
	}
}

// Validate checks field constraints.
func (e *Event) Validate() error {
	return check(e)
}

// ParseStart interprets Date and Time in loc. A missing time means midnight.
func (e *Event) ParseStart(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	clock := e.Time
	if clock == "" {
		clock = defaultTime
	}
	t, err := time.ParseInLocation(dateLayout+" "+timeLayout, e.Date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date/time: %v", ErrInvalid, err)
	}
	return t, nil
}

// DeriveStatus sets StartsAt from Date/Time and Status relative to now.
func (e *Event) DeriveStatus(loc *time.Location, now time.Time) error {
	start, err := e.ParseStart(loc)
	if err != nil {
		return err
	}
	e.StartsAt = start
	e.Status = StatusFor(start, now)
	return nil
}

// StatusFor returns upcoming when start is strictly after now.
func StatusFor(start, now time.Time) string {
	if start.After(now) {
		return StatusUpcoming
	}
	return StatusPast
}

// CountdownTo returns the days, hours and minutes left until start, or nil
// once start has been reached.
func CountdownTo(start, now time.Time) *Countdown {
	d := start.Sub(now)
	if d <= 0 {
		return nil
	}
	return &Countdown{
		Days:    int(d / (24 * time.Hour)),
		Hours:   int(d/time.Hour) % 24,
		Minutes: int(d/time.Minute) % 60,
	}
}

// WithCountdown fills Countdown for events that have not started yet.
func (e *Event) WithCountdown(now time.Time) {
	if e.StartsAt.IsZero() {
		e.Countdown = nil
		return
	}
	e.Countdown = CountdownTo(e.StartsAt, now)
}

// Render fills the derived presentation fields for a response.
func (e *Event) Render(now time.Time) {
	e.DescriptionHTML = RenderMarkdown(e.Description)
	e.WithCountdown(now)
}

// ImageURLs lists every image the event references.
func (e *Event) ImageURLs() []string {
	urls := make([]string, 0, len(e.Gallery)+2)
	if e.BannerImage != "" {
		urls = append(urls, e.BannerImage)
	}
	if e.PosterImage != "" {
		urls = append(urls, e.PosterImage)
	}
	for _, g := range e.Gallery {
		if g != "" {
			urls = append(urls, g)
		}
	}
	return urls
}

// HasMedia reports whether the event belongs on the gallery page.
func (e *Event) HasMedia() bool {
	return e.BannerImage != "" || len(e.Gallery) > 0
}

// EventPatch carries a partial update. Nil fields are left untouched.
type EventPatch struct {
	Title            *string       `json:"title"`
	Description      *string       `json:"description"`
	Date             *string       `json:"date"`
	Time             *string       `json:"time"`
	Location         *string       `json:"location"`
	BannerImage      *string       `json:"bannerImage"`
	PosterImage      *string       `json:"posterImage"`
	IsPinned         *bool         `json:"isPinned"`
	Gallery          *[]string     `json:"gallery"`
	Stats            *[]Stat       `json:"stats"`
	Participants     *string       `json:"participants"`
	Outcomes         *[]string     `json:"outcomes"`
	SocialPosts      *[]SocialPost `json:"socialPosts"`
	Results          *[]Result     `json:"results"`
	RegistrationLink *string       `json:"registrationLink"`
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p == (EventPatch{})
}

// Apply copies the set fields of p onto e.
func (p EventPatch) Apply(e *Event) {
	setString(&e.Title, p.Title)
	setString(&e.Description, p.Description)
	setString(&e.Date, p.Date)
	setString(&e.Time, p.Time)
	setString(&e.Location, p.Location)
	setString(&e.BannerImage, p.BannerImage)
	setString(&e.PosterImage, p.PosterImage)
	setString(&e.Participants, p.Participants)
	setString(&e.RegistrationLink, p.RegistrationLink)
	if p.IsPinned != nil {
		e.IsPinned = *p.IsPinned
	}
	if p.Gallery != nil {
		e.Gallery = *p.Gallery
	}
	if p.Stats != nil {
		e.Stats = *p.Stats
	}
	if p.Outcomes != nil {
		e.Outcomes = *p.Outcomes
	}
	if p.SocialPosts != nil {
		e.SocialPosts = *p.SocialPosts
	}
	if p.Results != nil {
		e.Results = *p.Results
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
