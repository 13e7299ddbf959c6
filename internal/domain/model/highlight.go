package model

import (
	"strings"
	"time"
)

// Highlight types shown as filter chips on the home page.
const (
	HighlightEvent     = "Event"
	HighlightMagazine  = "Magazine"
	HighlightUpdate    = "Update"
	HighlightInstagram = "Instagram"
	HighlightLinkedIn  = "LinkedIn"
)

// HighlightTypes lists the accepted highlight types.
var HighlightTypes = []string{HighlightEvent, HighlightMagazine, HighlightUpdate, HighlightInstagram, HighlightLinkedIn}

// Highlight is a card in the home page highlights strip.
type Highlight struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	Type        string    `json:"type" validate:"required,oneof=Event Magazine Update Instagram LinkedIn"`
	Date        string    `json:"date" validate:"required,datestr"`
	Thumbnail   string    `json:"thumbnail" validate:"omitempty,weblink"`
	Link        string    `json:"link" validate:"omitempty,weblink"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Normalize trims fields and canonicalizes the type's case.
func (h *Highlight) Normalize() {
	h.Title = strings.TrimSpace(h.Title)
	h.Description = strings.TrimSpace(h.Description)
	h.Date = strings.TrimSpace(h.Date)
	h.Thumbnail = strings.TrimSpace(h.Thumbnail)
	h.Link = strings.TrimSpace(h.Link)
	h.Type = CanonicalHighlightType(h.Type)
}

// Validate checks field constraints.
func (h *Highlight) Validate() error {
	return check(h)
}

// CanonicalHighlightType maps a case-insensitive name to its canonical form.
// Unknown names are returned trimmed and unchanged.
func CanonicalHighlightType(t string) string {
	t = strings.TrimSpace(t)
	for _, known := range HighlightTypes {
		if strings.EqualFold(t, known) {
			return known
		}
	}
	return t
}
