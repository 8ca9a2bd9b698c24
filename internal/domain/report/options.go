package report

import (
	"time"

	"github.com/okian/mintboard/internal/domain/model"
	"github.com/okian/mintboard/pkg/logger"
	"golang.org/x/text/language"
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithLocation sets the time zone for every timeline label.
func WithLocation(loc *time.Location) Option {
	return func(b *Builder) {
		if loc != nil {
			b.loc = loc
		}
	}
}

// WithPhaseLabels sets the phase naming used by the timeline and the pie.
func WithPhaseLabels(labels model.PhaseLabels) Option {
	return func(b *Builder) {
		b.labels = labels
	}
}

// WithTopN sets how many players the two rankings keep.
func WithTopN(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.topN = n
		}
	}
}

// WithLanguage sets the locale used for number display strings.
func WithLanguage(tag language.Tag) Option {
	return func(b *Builder) {
		b.format = NewFormatter(tag)
	}
}

// WithLogger sets the logger used for build warnings.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		b.log = l
	}
}
