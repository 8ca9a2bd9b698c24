package reportcli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/okian/mintboard/internal/domain/report"
	"github.com/okian/mintboard/internal/domain/table"
	"github.com/okian/mintboard/internal/domain/types"
	"golang.org/x/text/language"
)

// tabwriter layout.
const (
	minWidth = 0
	tabWidth = 4
	padding  = 2
	padChar  = ' '
)

const percent = 100

type renderer struct {
	tw     *tabwriter.Writer
	format *report.Formatter
}

func newRenderer(out io.Writer) *renderer {
	return &renderer{
		tw:     tabwriter.NewWriter(out, minWidth, tabWidth, padding, padChar, 0),
		format: report.NewFormatter(language.English),
	}
}

func (r *renderer) render(rep *report.Report, view table.View[report.PlayerRow]) error {
	r.heading(fmt.Sprintf("Mint report (%s)", rep.Location))
	for _, card := range rep.Stats {
		r.line("%s\t%s\t%s", card.Title, card.Display, card.Subtitle)
	}

	for _, name := range report.ChartNames {
		chart, err := rep.Chart(name)
		if err != nil {
			return err
		}
		r.chart(chart)
	}

	r.players(view)
	return r.tw.Flush()
}

func (r *renderer) heading(title string) {
	r.line("")
	r.line("%s", title)
	r.line("%s", strings.Repeat("=", len(title)))
}

func (r *renderer) line(format string, args ...any) {
	_, _ = fmt.Fprintf(r.tw, format+"\n", args...)
}

func (r *renderer) chart(c report.Chart) {
	r.heading(c.Title)
	for _, info := range c.Info {
		r.line("%s:\t%s", info.Label, info.Value)
	}

	switch {
	case len(c.Entries) > 0:
		for _, e := range c.Entries {
			r.line("%d.\t%s\t%s", e.Rank, e.DisplayKey, r.format.Number(e.Metric))
		}
	case len(c.Datasets) > 0:
		r.datasets(c.Labels, c.Datasets)
	case c.Kind == report.KindPie:
		r.slices(c.Series())
	case c.Kind == report.KindLine:
		r.timeline(c.Series())
	default:
		for i, label := range c.Labels {
			r.line("%s\t%s", label, r.format.Number(c.Values[i]))
		}
	}
}

// timeline summarizes a minute series by its extent and busiest minute.
func (r *renderer) timeline(s types.Series) {
	if len(s.Values) == 0 {
		r.line("no activity")
		return
	}
	peak := 0
	for i, v := range s.Values {
		if v > s.Values[peak] {
			peak = i
		}
	}
	r.line("Minutes with activity:\t%s", r.format.Int(int64(len(s.Values))))
	r.line("From:\t%s", s.Labels[0])
	r.line("To:\t%s", s.Labels[len(s.Labels)-1])
	r.line("Busiest minute:\t%s\t%s", s.Labels[peak], r.format.Number(s.Values[peak]))
}

func (r *renderer) datasets(labels []string, datasets []types.Dataset) {
	for _, ds := range datasets {
		total, peak := 0.0, 0
		for i, v := range ds.Data {
			total += v
			if v > ds.Data[peak] {
				peak = i
			}
		}
		busiest := "-"
		if len(ds.Data) > 0 && total > 0 {
			busiest = labels[peak]
		}
		r.line("%s\t%s heroes\tbusiest %s", ds.Label, r.format.Number(total), busiest)
	}
}

func (r *renderer) slices(s types.Series) {
	total := 0.0
	for _, v := range s.Values {
		total += v
	}
	for i, label := range s.Labels {
		share := "n/a"
		if total > 0 {
			share = r.format.Fixed2(s.Values[i]/total*percent) + "%"
		}
		r.line("%s\t%s\t%s", label, r.format.Number(s.Values[i]), share)
	}
}

func (r *renderer) players(view table.View[report.PlayerRow]) {
	r.heading(fmt.Sprintf("All Players (page %d of %d)", view.Page, max(view.TotalPages, 1)))
	if view.Total == 0 {
		r.line("no players")
		return
	}

	header := make([]string, len(view.Columns))
	for i, col := range view.Columns {
		header[i] = col.Label
		if view.Sort != nil && view.Sort.Key == col.Key {
			header[i] += sortMarker(view.Sort.Direction)
		}
	}
	r.line("#\t%s", strings.Join(header, "\t"))
	for _, row := range view.Rows {
		r.line("%d\t%s", row.Rank, strings.Join(row.Cells, "\t"))
	}

	r.line("")
	r.line("Showing %d to %d of %d players", view.Start, view.End, view.Total)
	r.line("Pages: %s", pageIndicators(view.Pages))
}

func sortMarker(d table.Direction) string {
	if d == table.Desc {
		return " v"
	}
	return " ^"
}

func pageIndicators(pages []types.PageIndicator) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		switch {
		case p.Ellipsis:
			parts[i] = "..."
		case p.Current:
			parts[i] = fmt.Sprintf("[%d]", p.Page)
		default:
			parts[i] = fmt.Sprintf("%d", p.Page)
		}
	}
	return strings.Join(parts, " ")
}
