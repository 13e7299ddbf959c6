package commands

import "errors"

// Sentinel errors for CLI commands.
var (
	ErrUnsupportedDriver = errors.New("command needs the postgres driver")
	ErrInvalidSteps      = errors.New("steps must be positive")
)
