package bucket

import "errors"

// Sentinel kinds for bucketing errors.
var (
	// ErrEmptySeries is returned when a summary is requested over no input.
	ErrEmptySeries = errors.New("empty time series")
)
