package table

import "errors"

// Sentinel kinds for table errors.
var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrNotSortable     = errors.New("column is not sortable")
	ErrInvalidColumn   = errors.New("invalid column definition")
	ErrInvalidPageSize = errors.New("page size must be positive")
	ErrInvalidSort     = errors.New("invalid sort direction")
)
