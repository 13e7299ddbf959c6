package service

import "errors"

var (
	ErrNoObjectStore = errors.New("object storage is not configured")
	ErrNotStarted    = errors.New("service not started")
)
