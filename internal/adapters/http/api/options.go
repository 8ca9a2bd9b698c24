package api

import "github.com/okian/mintboard/pkg/logger"

// DefaultMaxPageSize caps page_size on /players.
const DefaultMaxPageSize = 100

type options struct {
	log         logger.Logger
	maxPageSize int
}

// Option configures the Server.
type Option func(*options)

// WithLogger sets the logger used for request logs.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMaxPageSize sets the largest page_size accepted by /players.
func WithMaxPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPageSize = n
		}
	}
}
