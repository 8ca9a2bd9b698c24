// Package bucket groups timestamped observations into per-minute series.
package bucket

import (
	"fmt"
	"slices"
	"time"

	"github.com/okian/mintboard/internal/domain/types"
	"github.com/shopspring/decimal"
)

// MinuteMs is the bucket width in milliseconds.
const MinuteMs int64 = 60_000

// Label layouts: "{Mon} {Day}, {HH}:{MM}" for buckets and
// "{Mon} {Day}, {Year} {HH}:{MM}:{SS}" for absolute timestamps.
const (
	bucketLayout    = "Jan 2, 15:04"
	timestampLayout = "Jan 2, 2006 15:04:05"
)

// Bucket is one minute of aggregated observations.
type Bucket struct {
	StartMs int64   `json:"start_ms"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
}

// Point is a timestamped amount.
type Point struct {
	TimestampMs int64
	Value       float64
}

// Range summarizes a raw (unbucketed) series.
type Range struct {
	Count   int    `json:"count"`
	FirstMs int64  `json:"first_ms"`
	LastMs  int64  `json:"last_ms"`
	First   string `json:"first"`
	Last    string `json:"last"`
}

// Bucketer builds minute series. It is stateless apart from its label
// location and palette and is safe for concurrent use.
type Bucketer struct {
	loc     *time.Location
	palette []Color
}

// New creates a Bucketer labelling in UTC with the default palette.
func New(opts ...Option) *Bucketer {
	b := &Bucketer{
		loc:     time.UTC,
		palette: DefaultPalette(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FloorMinute truncates an epoch-millisecond timestamp to the start of its
// minute. Timestamps before the epoch floor towards negative infinity.
func FloorMinute(ms int64) int64 {
	r := ms % MinuteMs
	if r < 0 {
		r += MinuteMs
	}
	return ms - r
}

// Location returns the label time zone.
func (b *Bucketer) Location() *time.Location { return b.loc }

// Label formats a bucket start as "Jan 2, 15:04".
func (b *Bucketer) Label(startMs int64) string {
	return time.UnixMilli(startMs).In(b.loc).Format(bucketLayout)
}

// Timestamp formats an absolute instant as "Jan 2, 2006 15:04:05".
func (b *Bucketer) Timestamp(ms int64) string {
	return time.UnixMilli(ms).In(b.loc).Format(timestampLayout)
}

// Count buckets timestamps, counting one per observation.
func (b *Bucketer) Count(timestamps []int64) []Bucket {
	counts := make(map[int64]int64, len(timestamps))
	for _, ts := range timestamps {
		counts[FloorMinute(ts)]++
	}
	return collect(b, counts, func(n int64) float64 { return float64(n) })
}

// Sum buckets points, adding their values. Amounts are accumulated as
// decimals so per-bucket sums add up to the raw total.
func (b *Bucketer) Sum(points []Point) []Bucket {
	sums := make(map[int64]decimal.Decimal, len(points))
	for _, p := range points {
		start := FloorMinute(p.TimestampMs)
		sums[start] = sums[start].Add(decimal.NewFromFloat(p.Value))
	}
	return collect(b, sums, func(d decimal.Decimal) float64 { return d.InexactFloat64() })
}

// Total sums point values with the same decimal accumulation as Sum.
func Total(points []Point) float64 {
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(decimal.NewFromFloat(p.Value))
	}
	return total.InexactFloat64()
}

// Summarize reports the count and first/last instant of the raw series.
func (b *Bucketer) Summarize(timestamps []int64) (Range, error) {
	if len(timestamps) == 0 {
		return Range{}, fmt.Errorf("summarize: %w", ErrEmptySeries)
	}
	first, last := slices.Min(timestamps), slices.Max(timestamps)
	return Range{
		Count:   len(timestamps),
		FirstMs: first,
		LastMs:  last,
		First:   b.Timestamp(first),
		Last:    b.Timestamp(last),
	}, nil
}

func collect[V any](b *Bucketer, m map[int64]V, value func(V) float64) []Bucket {
	starts := make([]int64, 0, len(m))
	for start := range m {
		starts = append(starts, start)
	}
	slices.Sort(starts)

	out := make([]Bucket, len(starts))
	for i, start := range starts {
		out[i] = Bucket{StartMs: start, Label: b.Label(start), Value: value(m[start])}
	}
	return out
}

// ToSeries converts buckets into the renderer's label/value shape.
func ToSeries(buckets []Bucket) types.Series {
	s := types.Series{
		Labels: make([]string, len(buckets)),
		Values: make([]float64, len(buckets)),
	}
	for i, bk := range buckets {
		s.Labels[i] = bk.Label
		s.Values[i] = bk.Value
	}
	return s
}
