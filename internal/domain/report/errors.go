package report

import "errors"

// Sentinel kinds for report errors.
var (
	// ErrZeroDenominator is returned by averages over an empty population.
	ErrZeroDenominator = errors.New("zero denominator")
	ErrUnknownChart    = errors.New("unknown chart")
	ErrNilSnapshot     = errors.New("nil snapshot")
)
