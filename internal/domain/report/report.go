// Package report assembles the minting dashboard from a snapshot: headline
// figures, the timelines, the distributions, both rankings and the
// all-players rows.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/mintboard/internal/domain/bucket"
	"github.com/okian/mintboard/internal/domain/distribution"
	"github.com/okian/mintboard/internal/domain/model"
	"github.com/okian/mintboard/internal/domain/ranking"
	"github.com/okian/mintboard/pkg/logger"
	"golang.org/x/text/language"
)

// Report is a fully computed dashboard. It is immutable once built.
type Report struct {
	Fingerprint string      `json:"fingerprint"`
	Location    string      `json:"location"`
	Stats       []StatCard  `json:"stats"`
	Charts      []Chart     `json:"charts"`
	Players     []PlayerRow `json:"players"`
}

// Chart returns the chart called name.
func (r *Report) Chart(name string) (Chart, error) {
	for _, c := range r.Charts {
		if c.Name == name {
			return c, nil
		}
	}
	return Chart{}, fmt.Errorf("%q: %w", name, ErrUnknownChart)
}

// Stat returns the stat card with key.
func (r *Report) Stat(key string) (StatCard, bool) {
	for _, s := range r.Stats {
		if s.Key == key {
			return s, true
		}
	}
	return StatCard{}, false
}

// Builder computes reports. It holds only configuration and is safe for
// concurrent use.
type Builder struct {
	loc    *time.Location
	labels model.PhaseLabels
	topN   int
	format *Formatter
	log    logger.Logger
}

// NewBuilder creates a Builder labelling in UTC with the default phase names
// and top-10 rankings. The global logger is used unless WithLogger is given.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		loc:    time.UTC,
		labels: model.DefaultPhaseLabels(),
		topN:   ranking.DefaultLimit,
		format: NewFormatter(language.English),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logger.Get().Named("report")
	}
	return b
}

// Formatter returns the number formatter used for display strings.
func (b *Builder) Formatter() *Formatter { return b.format }

// Location returns the label time zone.
func (b *Builder) Location() *time.Location { return b.loc }

// Build computes every widget for snap. Undefined averages are reported as
// "n/a" cards; an empty transaction series fails the build.
func (b *Builder) Build(ctx context.Context, snap *model.Snapshot) (*Report, error) {
	if snap == nil {
		return nil, fmt.Errorf("build report: %w", ErrNilSnapshot)
	}
	bk := bucket.New(bucket.WithLocation(b.loc))

	transactions, err := b.transactionsChart(bk, snap)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	return &Report{
		Fingerprint: snap.Fingerprint,
		Location:    b.loc.String(),
		Stats:       b.stats(ctx, snap),
		Charts: []Chart{
			b.weeklyChart(snap),
			transactions,
			b.phasesChart(bk, snap),
			b.suiPaidChart(bk, snap),
			b.paidSplitChart(snap),
			b.phaseSplitChart(snap),
			b.topHeroesChart(snap),
			b.topSuiChart(snap),
		},
		Players: PlayerRows(snap),
	}, nil
}

func (b *Builder) stats(ctx context.Context, snap *model.Snapshot) []StatCard {
	f := b.format

	avgHeroes, errHeroes := AverageHeroesPerPlayer(snap)
	if errHeroes != nil {
		b.log.Warn(ctx, "average heroes per player is undefined",
			logger.String("fingerprint", snap.Fingerprint), logger.Error(errHeroes))
	}
	avgSui, errSui := AverageSuiPerPaidHero(snap)
	if errSui != nil {
		b.log.Warn(ctx, "average sui price is undefined",
			logger.String("fingerprint", snap.Fingerprint), logger.Error(errSui))
	}

	totalSui := snap.TotalSuiPaid
	return []StatCard{
		intCard(f, StatTotalHeroes, "Total Heroes Minted", "All minted heroes", snap.TotalHeroMinted),
		{Key: StatTotalSui, Title: "Total SUI Paid", Subtitle: "Total SUI collected", Value: &totalSui, Display: f.Number(totalSui)},
		intCard(f, StatPaidHeroes, "Paid Heroes Minted", "Heroes purchased", snap.TotalPaidHeroMinted),
		intCard(f, StatUnpaidHeroes, "Unpaid Heroes", "Heroes minted for free", UnpaidHeroes(snap)),
		intCard(f, StatTotalPlayers, "Total Players", "Unique minters", int64(snap.PlayerCount())),
		averageCard(f, StatAvgHeroesPlayer, "Avg Heroes/Player", "Average per player", avgHeroes, errHeroes),
		averageCard(f, StatAvgSuiPrice, "Avg SUI Price", "Average price paid", avgSui, errSui),
		intCard(f, StatTotalTransactions, "Total Transactions", "Total transactions", int64(len(snap.TxTimes))),
	}
}

func (b *Builder) weeklyChart(snap *model.Snapshot) Chart {
	c := Chart{
		Name:   ChartWeekly,
		Title:  "Weekly Hero Minted",
		Kind:   KindBar,
		Labels: make([]string, len(snap.Weekly)),
		Values: make([]float64, len(snap.Weekly)),
	}
	for i, w := range snap.Weekly {
		c.Labels[i] = w.WeekStart
		c.Values[i] = float64(w.Count)
	}
	c.paint(defaultBar)
	return c
}

func (b *Builder) transactionsChart(bk *bucket.Bucketer, snap *model.Snapshot) (Chart, error) {
	timestamps := snap.TxTimestamps()
	summary, err := bk.Summarize(timestamps)
	if err != nil {
		return Chart{}, fmt.Errorf("transactions: %w", err)
	}
	series := bucket.ToSeries(bk.Count(timestamps))

	c := Chart{
		Name:   ChartTransactions,
		Title:  "Transaction Timeline (By Minute)",
		Kind:   KindLine,
		Labels: series.Labels,
		Values: series.Values,
		Range:  &summary,
		Info: []Info{
			{Label: "Total Transactions", Value: b.format.Int(int64(summary.Count))},
			{Label: "Start Time", Value: summary.First},
			{Label: "End Time", Value: summary.Last},
		},
	}
	c.paint(transactionLine)
	return c, nil
}

func (b *Builder) phasesChart(bk *bucket.Bucketer, snap *model.Snapshot) Chart {
	groups := make([]bucket.Group, len(snap.PhaseTimes))
	for i, p := range snap.PhaseTimes {
		groups[i] = bucket.Group{Key: p.Phase, TimestampsMs: p.TimestampsMs}
	}
	multi := bk.Align(groups, b.labels.Label).Chart()
	return Chart{
		Name:     ChartPhases,
		Title:    "Phase-wise Minting Timeline (By Minute)",
		Kind:     KindMultiLine,
		Labels:   multi.Labels,
		Datasets: multi.Datasets,
	}
}

func (b *Builder) suiPaidChart(bk *bucket.Bucketer, snap *model.Snapshot) Chart {
	points := make([]bucket.Point, len(snap.SuiPaidAmounts))
	for i, p := range snap.SuiPaidAmounts {
		points[i] = bucket.Point{TimestampMs: p.TimestampMs, Value: p.Amount}
	}
	series := bucket.ToSeries(bk.Sum(points))
	total := bucket.Total(points)

	c := Chart{
		Name:   ChartSuiPaid,
		Title:  "SUI Paid Amount Timeline (By Minute)",
		Kind:   KindLine,
		Labels: series.Labels,
		Values: series.Values,
		Total:  &total,
		Info: []Info{
			{Label: "Total SUI Paid", Value: b.format.Number(total) + " SUI"},
		},
	}
	c.paint(suiLine)
	return c
}

func (b *Builder) paidSplitChart(snap *model.Snapshot) Chart {
	c := Chart{
		Name:   ChartPaidSplit,
		Title:  "Paid vs Unpaid Heroes",
		Kind:   KindPie,
		Labels: []string{"Paid Heroes", "Unpaid Heroes"},
		Values: []float64{float64(snap.TotalPaidHeroMinted), float64(UnpaidHeroes(snap))},
	}
	c.paintSlices(paidSplitPie)
	return c
}

func (b *Builder) phaseSplitChart(snap *model.Snapshot) Chart {
	series := distribution.CountPhases(b.labels, snap.PlayerEvents).Series()
	c := Chart{
		Name:   ChartPhaseSplit,
		Title:  "Heroes by Phase",
		Kind:   KindPie,
		Labels: series.Labels,
		Values: series.Values,
	}
	c.paintSlices(defaultPie)
	return c
}

func (b *Builder) topHeroesChart(snap *model.Snapshot) Chart {
	top := ranking.New(ranking.WithLimit(b.topN)).Top(ranking.FromEventCounts(snap.PlayerEvents))
	c := entriesChart(ChartTopHeroes, fmt.Sprintf("Top %d Players by Heroes Minted", b.topN), KindBar, top)
	c.paint(topHeroesBar)
	return c
}

func (b *Builder) topSuiChart(snap *model.Snapshot) Chart {
	top := ranking.New(ranking.WithLimit(b.topN)).Top(ranking.FromAmounts(snap.PlayerSuiPaid))
	c := entriesChart(ChartTopSui, fmt.Sprintf("Top %d Players SUI Distribution", b.topN), KindPie, top)
	c.paintSlices(topSuiPie)
	return c
}
