package table

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 10

type settings struct {
	pageSize int
	sort     *SortState
}

// Option applies a configuration option to a Table.
type Option func(*settings)

// WithPageSize sets the fixed number of rows per page.
func WithPageSize(n int) Option {
	return func(s *settings) {
		s.pageSize = n
	}
}

// WithSort starts the table sorted by state instead of unsorted.
func WithSort(state SortState) Option {
	return func(s *settings) {
		st := state
		s.sort = &st
	}
}
