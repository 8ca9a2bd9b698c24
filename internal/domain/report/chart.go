package report

import (
	"strings"

	"github.com/okian/mintboard/internal/domain/bucket"
	"github.com/okian/mintboard/internal/domain/types"
)

// Kind is the renderer a chart is meant for.
type Kind string

// Chart kinds.
const (
	KindBar       Kind = "bar"
	KindLine      Kind = "line"
	KindMultiLine Kind = "multi-line"
	KindPie       Kind = "pie"
)

// Chart names, in dashboard order.
const (
	ChartWeekly       = "weekly"
	ChartTransactions = "transactions"
	ChartPhases       = "phases"
	ChartSuiPaid      = "sui-paid"
	ChartPaidSplit    = "paid-split"
	ChartPhaseSplit   = "phase-split"
	ChartTopHeroes    = "top-heroes"
	ChartTopSui       = "top-sui"
)

// ChartNames lists every chart a report carries.
var ChartNames = []string{
	ChartWeekly,
	ChartTransactions,
	ChartPhases,
	ChartSuiPaid,
	ChartPaidSplit,
	ChartPhaseSplit,
	ChartTopHeroes,
	ChartTopSui,
}

// Info is a labelled figure shown next to a chart.
type Info struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Chart is one dashboard widget in renderer-ready form. Single series
// charts use Labels and Values; multi-line charts use Datasets.
type Chart struct {
	Name     string          `json:"name"`
	Title    string          `json:"title"`
	Kind     Kind            `json:"kind"`
	Labels   []string        `json:"labels"`
	Values   []float64       `json:"values,omitempty"`
	Datasets []types.Dataset `json:"datasets,omitempty"`

	BorderColor      string   `json:"borderColor,omitempty"`
	BackgroundColor  string   `json:"backgroundColor,omitempty"`
	BorderColors     []string `json:"borderColors,omitempty"`
	BackgroundColors []string `json:"backgroundColors,omitempty"`

	Info    []Info        `json:"info,omitempty"`
	Entries []types.Entry `json:"entries,omitempty"`
	Range   *bucket.Range `json:"range,omitempty"`
	Total   *float64      `json:"total,omitempty"`
}

// Series returns the chart's single series.
func (c Chart) Series() types.Series {
	return types.Series{Labels: c.Labels, Values: c.Values}
}

// Single colour pairs for bar and line charts.
var (
	defaultBar      = bucket.Color{Border: "rgba(102, 126, 234, 1)", Background: "rgba(102, 126, 234, 0.8)"}
	topHeroesBar    = bucket.Color{Border: "rgba(237, 100, 166, 1)", Background: "rgba(237, 100, 166, 0.8)"}
	transactionLine = bucket.Color{Border: "rgba(59, 130, 246, 1)", Background: "rgba(59, 130, 246, 0.2)"}
	suiLine         = bucket.Color{Border: "rgba(34, 197, 94, 1)", Background: "rgba(34, 197, 94, 0.2)"}
)

// Pie fills; borders are the same colours fully opaque.
var (
	defaultPie = []string{
		"rgba(102, 126, 234, 0.8)",
		"rgba(118, 75, 162, 0.8)",
		"rgba(237, 100, 166, 0.8)",
		"rgba(255, 154, 158, 0.8)",
		"rgba(250, 208, 196, 0.8)",
	}
	paidSplitPie = []string{
		"rgba(34, 197, 94, 0.8)",
		"rgba(148, 163, 184, 0.8)",
	}
	topSuiPie = []string{
		"rgba(102, 126, 234, 0.8)",
		"rgba(118, 75, 162, 0.8)",
		"rgba(237, 100, 166, 0.8)",
		"rgba(255, 154, 158, 0.8)",
		"rgba(250, 208, 196, 0.8)",
		"rgba(165, 94, 234, 0.8)",
		"rgba(75, 192, 192, 0.8)",
		"rgba(255, 205, 86, 0.8)",
		"rgba(201, 203, 207, 0.8)",
		"rgba(54, 162, 235, 0.8)",
	}
)

func (c *Chart) paint(color bucket.Color) {
	c.BorderColor = color.Border
	c.BackgroundColor = color.Background
}

// paintSlices assigns one palette colour per value, cycling when there are
// more values than colours.
func (c *Chart) paintSlices(palette []string) {
	c.BackgroundColors = make([]string, len(c.Values))
	c.BorderColors = make([]string, len(c.Values))
	for i := range c.Values {
		fill := palette[i%len(palette)]
		c.BackgroundColors[i] = fill
		c.BorderColors[i] = strings.Replace(fill, "0.8", "1", 1)
	}
}

func entriesChart(name, title string, kind Kind, entries []types.Entry) Chart {
	c := Chart{
		Name:    name,
		Title:   title,
		Kind:    kind,
		Labels:  make([]string, len(entries)),
		Values:  make([]float64, len(entries)),
		Entries: entries,
	}
	for i, e := range entries {
		c.Labels[i] = e.DisplayKey
		c.Values[i] = e.Metric
	}
	return c
}
