// Package ranking selects the top entries of a keyed metric.
package ranking

import (
	"slices"

	"github.com/okian/mintboard/internal/domain/model"
	"github.com/okian/mintboard/internal/domain/types"
)

// Default ranking configuration constants.
const (
	DefaultLimit  = 10
	defaultPrefix = 6
	defaultSuffix = 4
	ellipsis      = "..."
)

// Item is a key and the metric it is ranked by.
type Item struct {
	Key    string
	Metric float64
}

// Ranker computes top-N entries sorted by metric descending. Equal metrics
// keep their input order.
type Ranker struct {
	limit  int
	prefix int
	suffix int
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithLimit sets N; values below 1 are ignored.
func WithLimit(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.limit = n
		}
	}
}

// WithDisplay sets how many leading and trailing characters of a key are
// kept in the display form.
func WithDisplay(prefix, suffix int) Option {
	return func(r *Ranker) {
		if prefix >= 0 && suffix >= 0 {
			r.prefix = prefix
			r.suffix = suffix
		}
	}
}

// New creates a Ranker keeping the top 10 with 6/4 display keys.
func New(opts ...Option) *Ranker {
	r := &Ranker{
		limit:  DefaultLimit,
		prefix: defaultPrefix,
		suffix: defaultSuffix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Top returns at most N entries ordered by metric descending, ranked from 1.
func (r *Ranker) Top(items []Item) []types.Entry {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		switch {
		case a.Metric > b.Metric:
			return -1
		case a.Metric < b.Metric:
			return 1
		default:
			return 0
		}
	})
	if len(sorted) > r.limit {
		sorted = sorted[:r.limit]
	}

	out := make([]types.Entry, len(sorted))
	for i, it := range sorted {
		out[i] = types.Entry{
			Rank:       i + 1,
			Key:        it.Key,
			DisplayKey: r.Shorten(it.Key),
			Metric:     it.Metric,
		}
	}
	return out
}

// Shorten keeps the configured prefix and suffix of key joined by "...".
// Keys that would not get shorter are returned unchanged.
func (r *Ranker) Shorten(key string) string {
	return ShortenKey(key, r.prefix, r.suffix)
}

// ShortenKey keeps the first prefix and last suffix runes of key.
func ShortenKey(key string, prefix, suffix int) string {
	runes := []rune(key)
	if len(runes) <= prefix+suffix+len(ellipsis) {
		return key
	}
	return string(runes[:prefix]) + ellipsis + string(runes[len(runes)-suffix:])
}

// FromAmounts ranks players by the SUI they paid, in source order.
func FromAmounts(players []model.PlayerAmount) []Item {
	items := make([]Item, len(players))
	for i, p := range players {
		items[i] = Item{Key: p.Address, Metric: p.Amount}
	}
	return items
}

// FromEventCounts ranks players by how many events they own, in source order.
func FromEventCounts(players []model.PlayerEvents) []Item {
	items := make([]Item, len(players))
	for i, p := range players {
		items[i] = Item{Key: p.Address, Metric: float64(len(p.Events))}
	}
	return items
}
