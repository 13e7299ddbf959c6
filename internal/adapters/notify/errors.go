package notify

import "errors"

var (
	ErrInvalidWebhook = errors.New("invalid discord webhook url")
	ErrDeliver        = errors.New("notification delivery failed")
)
