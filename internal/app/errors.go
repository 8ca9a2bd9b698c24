package service

import "errors"

// Sentinel errors returned by the Service.
var (
	ErrNotStarted      = errors.New("service not started")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidTimezone = errors.New("invalid timezone")
)
