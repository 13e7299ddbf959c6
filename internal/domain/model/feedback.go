package model

import (
	"strings"
	"time"
)

// Feedback is a message left through the public contact form.
type Feedback struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"max=100"`
	Email     string    `json:"email" validate:"omitempty,email,max=254"`
	Message   string    `json:"message" validate:"required,max=5000"`
	Rating    int       `json:"rating" validate:"gte=0,lte=5"`
	EventID   string    `json:"eventId" validate:"max=64"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Normalize trims fields and lower-cases the email.
func (f *Feedback) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Message = strings.TrimSpace(f.Message)
	f.EventID = strings.TrimSpace(f.EventID)
}

// Validate checks field constraints.
func (f *Feedback) Validate() error {
	return check(f)
}
