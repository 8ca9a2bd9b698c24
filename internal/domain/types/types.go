// Package types contains the rendering shapes shared by the report, the HTTP
// API and the CLI.
package types

// Series is a single labelled series for bar, line and pie widgets.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Dataset is one line of a multi-series chart.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
}

// MultiSeries shares one x-axis across several datasets.
type MultiSeries struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Entry is a ranked row: a full key, its shortened display form and the
// metric it was ranked by.
type Entry struct {
	Rank       int     `json:"rank"`
	Key        string  `json:"key"`
	DisplayKey string  `json:"display_key"`
	Metric     float64 `json:"metric"`
}

// ColumnDef describes a table column to the renderer.
type ColumnDef struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
}

// PageIndicator is one slot of the pagination control; Ellipsis slots
// carry no page number.
type PageIndicator struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}
