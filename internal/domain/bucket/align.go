package bucket

import (
	"slices"

	"github.com/okian/mintboard/internal/domain/types"
)

// Color is a line colour pair.
type Color struct {
	Border     string `json:"border"`
	Background string `json:"background"`
}

// DefaultPalette returns the phase timeline colours (green, blue, purple,
// orange, pink).
func DefaultPalette() []Color {
	return []Color{
		{Border: "rgba(34, 197, 94, 1)", Background: "rgba(34, 197, 94, 0.2)"},
		{Border: "rgba(59, 130, 246, 1)", Background: "rgba(59, 130, 246, 0.2)"},
		{Border: "rgba(168, 85, 247, 1)", Background: "rgba(168, 85, 247, 0.2)"},
		{Border: "rgba(249, 115, 22, 1)", Background: "rgba(249, 115, 22, 0.2)"},
		{Border: "rgba(236, 72, 153, 1)", Background: "rgba(236, 72, 153, 0.2)"},
	}
}

// Group is one keyed set of raw timestamps, e.g. all mints of a phase.
type Group struct {
	Key          int
	TimestampsMs []int64
}

// AlignedSeries is a group's counts re-expressed on the shared axis.
type AlignedSeries struct {
	Key    int
	Name   string
	Values []float64
	Color  Color
}

// Aligned is a set of series sharing one minute axis.
type Aligned struct {
	StartsMs []int64
	Labels   []string
	Series   []AlignedSeries
}

// Align buckets each group on its own, then re-indexes every group onto the
// sorted union of bucket starts, filling missing minutes with zero. Series
// are ordered by key; groups sharing a key are merged.
func (b *Bucketer) Align(groups []Group, name func(key int) string) Aligned {
	merged := make(map[int][]int64, len(groups))
	keys := make([]int, 0, len(groups))
	for _, g := range groups {
		if _, ok := merged[g.Key]; !ok {
			keys = append(keys, g.Key)
		}
		merged[g.Key] = append(merged[g.Key], g.TimestampsMs...)
	}
	slices.Sort(keys)

	perKey := make(map[int]map[int64]float64, len(keys))
	axis := make(map[int64]struct{})
	for _, key := range keys {
		counts := make(map[int64]float64)
		for _, bk := range b.Count(merged[key]) {
			counts[bk.StartMs] = bk.Value
			axis[bk.StartMs] = struct{}{}
		}
		perKey[key] = counts
	}

	starts := make([]int64, 0, len(axis))
	for start := range axis {
		starts = append(starts, start)
	}
	slices.Sort(starts)

	out := Aligned{
		StartsMs: starts,
		Labels:   make([]string, len(starts)),
		Series:   make([]AlignedSeries, 0, len(keys)),
	}
	for i, start := range starts {
		out.Labels[i] = b.Label(start)
	}
	for _, key := range keys {
		values := make([]float64, len(starts))
		for i, start := range starts {
			values[i] = perKey[key][start]
		}
		out.Series = append(out.Series, AlignedSeries{
			Key:    key,
			Name:   name(key),
			Values: values,
			Color:  b.colorFor(key),
		})
	}
	return out
}

// colorFor picks palette[(key-1) mod n], wrapped to stay non-negative.
func (b *Bucketer) colorFor(key int) Color {
	n := len(b.palette)
	return b.palette[((key-1)%n+n)%n]
}

// Chart converts the aligned series into the multi-line renderer shape.
func (a Aligned) Chart() types.MultiSeries {
	chart := types.MultiSeries{
		Labels:   a.Labels,
		Datasets: make([]types.Dataset, len(a.Series)),
	}
	for i, s := range a.Series {
		chart.Datasets[i] = types.Dataset{
			Label:           s.Name,
			Data:            s.Values,
			BorderColor:     s.Color.Border,
			BackgroundColor: s.Color.Background,
		}
	}
	return chart
}
