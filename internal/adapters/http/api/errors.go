package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrAdminDisabled = errors.New("admin API is disabled: no admin tokens configured")
	ErrInternal      = errors.New("internal error")
)
