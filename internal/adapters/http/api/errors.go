package api

import (
	"errors"
	"net/http"

	"github.com/okian/mintboard/internal/adapters/source"
	service "github.com/okian/mintboard/internal/app"
	"github.com/okian/mintboard/internal/domain/bucket"
	"github.com/okian/mintboard/internal/domain/report"
	"github.com/okian/mintboard/internal/domain/table"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrLimitExceeded = errors.New("page size exceeds limit")
)

// classify maps an upstream error to a status code and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "not_started"
	case errors.Is(err, service.ErrInvalidTimezone):
		return http.StatusBadRequest, "invalid_timezone"
	case errors.Is(err, service.ErrPlayerNotFound),
		errors.Is(err, report.ErrUnknownChart):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, table.ErrUnknownColumn),
		errors.Is(err, table.ErrNotSortable),
		errors.Is(err, table.ErrInvalidSort),
		errors.Is(err, table.ErrInvalidPageSize),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrLimitExceeded):
		return http.StatusBadRequest, "limit_exceeded"
	case errors.Is(err, bucket.ErrEmptySeries),
		errors.Is(err, source.ErrMalformed):
		return http.StatusUnprocessableEntity, "unprocessable_snapshot"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
