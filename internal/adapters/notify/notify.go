// Package notify delivers short messages about new site content to the
// club's Discord channel.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
)

// Discord limits.
const (
	maxContentLen     = 2000
	maxDescriptionLen = 4096
	defaultUsername   = "Nexus"
)

// Notifier sends a notification.
type Notifier interface {
	Notify(ctx context.Context, n *model.Notification) error
}

// Noop drops every notification.
type Noop struct{}

func (Noop) Notify(context.Context, *model.Notification) error { return nil }

// Option configures a Discord notifier.
type Option func(*Discord)

// WithHTTPClient sets the client used for webhook calls.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Discord) {
		if c != nil {
			d.session.Client = c
		}
	}
}

// WithUsername overrides the webhook display name.
func WithUsername(name string) Option {
	return func(d *Discord) {
		if name != "" {
			d.username = name
		}
	}
}

// Discord posts notifications through a channel webhook.
type Discord struct {
	session  *discordgo.Session
	id       string
	token    string
	username string
	tr       *Translator
}

// NewDiscord builds a webhook notifier; locale selects the message language.
func NewDiscord(webhookURL, locale string, opts ...Option) (*Discord, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	tr, err := NewTranslator(locale)
	if err != nil {
		return nil, err
	}
	s, err := discordgo.New("")
	if err != nil {
		return nil, err
	}
	d := &Discord{session: s, id: id, token: token, username: defaultUsername, tr: tr}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// ParseWebhookURL extracts the id and token from
// https://discord.com/api/webhooks/{id}/{token}.
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return "", "", ErrInvalidWebhook
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" {
			id, token = parts[i+1], parts[i+2]
			break
		}
	}
	if id == "" || token == "" {
		return "", "", ErrInvalidWebhook
	}
	return id, token, nil
}

// Notify posts n to the webhook.
func (d *Discord) Notify(ctx context.Context, n *model.Notification) error {
	params := d.Render(n)
	if _, err := d.session.WebhookExecute(d.id, d.token, false, params, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliver, err)
	}
	return nil
}

// Render builds the webhook payload for n.
func (d *Discord) Render(n *model.Notification) *discordgo.WebhookParams {
	author := n.Author
	if author == "" {
		author = d.tr.T("Anonymous", nil)
	}
	data := map[string]any{"Author": author, "Title": n.Title, "Link": n.Link}

	var content string
	switch n.Topic {
	case model.TopicFeedback:
		content = d.tr.T("FeedbackReceived", data)
	case model.TopicEvent:
		content = d.tr.T("EventPublished", data)
	default:
		content = n.Title
	}

	embed := &discordgo.MessageEmbed{
		Title:       n.Title,
		Description: truncate(n.Body, maxDescriptionLen),
	}
	if n.Link != "" {
		embed.URL = n.Link
		embed.Footer = &discordgo.MessageEmbedFooter{Text: d.tr.T("EventLink", data)}
	}
	return &discordgo.WebhookParams{
		Content:         truncate(content, maxContentLen),
		Username:        d.username,
		Embeds:          []*discordgo.MessageEmbed{embed},
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
