package model

import (
	"errors"
)

// Sentinel errors shared by every layer. Adapters wrap them; the HTTP layer
// maps them to status codes with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalid          = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrTooLarge         = errors.New("payload too large")
)
