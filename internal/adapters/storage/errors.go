package storage

import "errors"

var (
	ErrInvalidName    = errors.New("invalid object name")
	ErrObjectStore    = errors.New("object store request failed")
	ErrMissingBackend = errors.New("storage backend is not configured")
)
