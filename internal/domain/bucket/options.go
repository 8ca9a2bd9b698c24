// Package bucket groups timestamped observations into per-minute series.
package bucket

import "time"

// Option applies a configuration option to the Bucketer.
type Option func(*Bucketer)

// WithLocation sets the time zone used for bucket and timestamp labels.
// Bucket boundaries are unaffected; they are always epoch-minute aligned.
func WithLocation(loc *time.Location) Option {
	return func(b *Bucketer) {
		if loc != nil {
			b.loc = loc
		}
	}
}

// WithPalette sets the cyclic colour palette used by Align.
func WithPalette(palette []Color) Option {
	return func(b *Bucketer) {
		if len(palette) > 0 {
			b.palette = append([]Color(nil), palette...)
		}
	}
}
