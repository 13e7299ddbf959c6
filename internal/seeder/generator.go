package seeder

import (
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/manveru/faker"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

const (
	maxTitleWords   = 5
	maxParagraphs   = 4
	eventSpreadDays = 120
)

var (
	roles       = []string{"President", "Vice President", "Secretary", "Technical Head", "Design Head", "Events Head", "Member", "Member", "Member"}
	departments = []string{"Core", "Technical", "Design", "Events", "Marketing"}
	years       = []string{"FE", "SE", "TE", "BE"}
	platforms   = []string{"Instagram", "LinkedIn", "X"}
)

// Generator builds payloads for every content type.
type Generator struct {
	fake *faker.Faker
	now  time.Time
	run  string
}

// NewGenerator creates a generator with English sample text. Titles carry a
// per-run suffix so repeated seeds do not collide on slugs.
func NewGenerator(now time.Time) (*Generator, error) {
	f, err := faker.New("en")
	if err != nil {
		return nil, fmt.Errorf("faker: %w", err)
	}
	return &Generator{fake: f, now: now, run: uuid.NewString()[:8]}, nil
}

// Items returns the calls for one seed run, events first.
func (g *Generator) Items(cfg *Config) []Item {
	items := make([]Item, 0, cfg.Events+cfg.Team+cfg.Highlights+cfg.Feedback)
	for i := 0; i < cfg.Events; i++ {
		items = append(items, Item{Kind: KindEvent, Path: "/api/events", Admin: true, Body: g.Event(i)})
	}
	for i := 0; i < cfg.Team; i++ {
		items = append(items, Item{Kind: KindTeam, Path: "/api/teams", Admin: true, Body: g.TeamMember(i)})
	}
	for i := 0; i < cfg.Highlights; i++ {
		items = append(items, Item{Kind: KindHighlight, Path: "/api/highlights", Admin: true, Body: g.Highlight(i)})
	}
	for i := 0; i < cfg.Feedback; i++ {
		items = append(items, Item{Kind: KindFeedback, Path: "/api/feedback", Key: uuid.NewString(), Body: g.Feedback()})
	}
	return items
}

func (g *Generator) title(i int) string {
	t := strings.TrimSuffix(g.fake.Sentence(rand.IntN(maxTitleWords)+2, false), ".")
	return fmt.Sprintf("%s %s-%d", t, g.run, i)
}

func (g *Generator) text() string {
	return strings.Join(g.fake.Paragraphs(rand.IntN(maxParagraphs)+1, true), "\n\n")
}

// Event returns an event dated up to eventSpreadDays either side of now.
func (g *Generator) Event(i int) model.Event {
	day := g.now.AddDate(0, 0, rand.IntN(2*eventSpreadDays)-eventSpreadDays)
	e := model.Event{
		Title:        g.title(i),
		Description:  g.text(),
		Date:         day.Format(time.DateOnly),
		Time:         fmt.Sprintf("%02d:%02d", 9+rand.IntN(10), 15*rand.IntN(4)),
		Location:     g.fake.City(),
		IsPinned:     i == 0,
		Participants: fmt.Sprintf("%d+", 10*(rand.IntN(30)+1)),
		Stats: []model.Stat{
			{Label: "Participants", Value: fmt.Sprint(rand.IntN(300) + 20)},
			{Label: "Teams", Value: fmt.Sprint(rand.IntN(60) + 5)},
		},
		Outcomes: []string{g.fake.Sentence(8, true)},
	}
	if day.Before(g.now) {
		e.Results = []model.Result{
			{Pos: "1st", Name: g.fake.Name()},
			{Pos: "2nd", Name: g.fake.Name()},
		}
	}
	return e
}

// TeamMember returns a member with a random role and department.
func (g *Generator) TeamMember(i int) model.TeamMember {
	name := g.fake.Name()
	handle := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	return model.TeamMember{
		Name:       name,
		Role:       roles[rand.IntN(len(roles))],
		Department: departments[rand.IntN(len(departments))],
		Year:       years[rand.IntN(len(years))],
		Bio:        g.fake.Sentence(12, true),
		Order:      i,
		SocialMedia: []model.SocialLink{
			{Platform: "LinkedIn", URL: "https://www.linkedin.com/in/" + url.PathEscape(handle)},
		},
	}
}

// Highlight returns a highlight of a random type.
func (g *Generator) Highlight(i int) model.Highlight {
	kind := model.HighlightTypes[rand.IntN(len(model.HighlightTypes))]
	return model.Highlight{
		Title:       g.title(i),
		Description: g.fake.Sentence(14, true),
		Type:        kind,
		Date:        g.now.AddDate(0, 0, -rand.IntN(eventSpreadDays)).Format(time.DateOnly),
		Link:        "https://example.com/" + strings.ToLower(platforms[rand.IntN(len(platforms))]) + "/" + g.run,
	}
}

// Feedback returns an anonymous-or-named feedback message.
func (g *Generator) Feedback() model.Feedback {
	f := model.Feedback{
		Message: g.fake.Paragraphs(1, false)[0],
		Rating:  rand.IntN(6),
	}
	if rand.IntN(2) == 0 {
		f.Name = g.fake.Name()
	}
	return f
}
