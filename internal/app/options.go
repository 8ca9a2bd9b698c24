package service

import (
	"time"

	"github.com/okian/mintboard/internal/domain/model"
	"github.com/okian/mintboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataPath sets the snapshot document loaded by Start and Reload.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithLocation sets the default time zone for report labels.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithPhaseLabels sets the phase naming used in reports.
func WithPhaseLabels(labels model.PhaseLabels) Option {
	return func(s *Service) {
		s.labels = labels
	}
}

// WithTopN sets how many players each ranking keeps.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithPlayersPageSize sets the default players table page size.
func WithPlayersPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithCache enables or disables keeping built reports.
func WithCache(enabled bool) Option {
	return func(s *Service) {
		s.cacheEnabled = enabled
	}
}
