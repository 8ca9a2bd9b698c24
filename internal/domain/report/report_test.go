package report_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/okian/mintboard/internal/domain/bucket"
	"github.com/okian/mintboard/internal/domain/model"
	"github.com/okian/mintboard/internal/domain/report"
	"github.com/okian/mintboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
	"golang.org/x/text/language"
)

func at(h, m, s int) int64 {
	return time.Date(2025, time.March, 10, h, m, s, 0, time.UTC).UnixMilli()
}

func fixture() *model.Snapshot {
	snap := &model.Snapshot{
		TotalHeroMinted:     3,
		TotalSuiPaid:        7.5,
		TotalPaidHeroMinted: 2,
		Weekly: []model.WeeklyData{
			{WeekStart: "Mar 10", WeekEnd: "Mar 16", Count: 3, WeekNumber: 1},
		},
		PlayerEvents: []model.PlayerEvents{
			{Address: "0xaaaa", Events: []model.MintEvent{
				{Digest: "d1", Phase: 0, TimestampMs: at(10, 0, 5), IsPaid: true},
				{Digest: "d2", Phase: 1, TimestampMs: at(10, 0, 45), IsPaid: true},
			}},
			{Address: "0xbbbb", Events: []model.MintEvent{
				{Digest: "d3", Phase: 0, TimestampMs: at(10, 1, 2)},
			}},
		},
		PlayerSuiPaid: []model.PlayerAmount{
			{Address: "0xaaaa", Amount: 5.5},
			{Address: "0xcccc", Amount: 2},
		},
		TxTimes: []model.TxTime{
			{TxID: "d1", TimestampMs: at(10, 0, 5)},
			{TxID: "d2", TimestampMs: at(10, 0, 45)},
			{TxID: "d3", TimestampMs: at(10, 1, 2)},
		},
		PhaseTimes: []model.PhaseTimes{
			{Phase: 1, TimestampsMs: []int64{at(10, 0, 45)}},
			{Phase: 0, TimestampsMs: []int64{at(10, 0, 5), at(10, 1, 2)}},
		},
		SuiPaidAmounts: []model.SuiPaidAmount{
			{Amount: 0.1, TimestampMs: at(10, 0, 5)},
			{Amount: 0.2, TimestampMs: at(10, 0, 45)},
			{Amount: 1.5, TimestampMs: at(10, 1, 2)},
		},
		Fingerprint: "abc",
	}
	snap.Index()
	return snap
}

func TestBuild(t *testing.T) {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	Convey("Given a small snapshot", t, func() {
		rep, err := report.NewBuilder().Build(ctx, fixture())
		So(err, ShouldBeNil)
		So(rep.Fingerprint, ShouldEqual, "abc")
		So(rep.Location, ShouldEqual, "UTC")

		Convey("Then every chart is present in dashboard order", func() {
			names := make([]string, len(rep.Charts))
			for i, c := range rep.Charts {
				names[i] = c.Name
			}
			So(names, ShouldResemble, report.ChartNames)
		})

		Convey("Then the stat cards are computed", func() {
			card, ok := rep.Stat(report.StatTotalHeroes)
			So(ok, ShouldBeTrue)
			So(card.Display, ShouldEqual, "3")

			card, _ = rep.Stat(report.StatUnpaidHeroes)
			So(*card.Value, ShouldEqual, 1.0)

			card, _ = rep.Stat(report.StatAvgHeroesPlayer)
			So(*card.Value, ShouldEqual, 1.5)
			So(card.Display, ShouldEqual, "1.50")

			card, _ = rep.Stat(report.StatAvgSuiPrice)
			So(card.Display, ShouldEqual, "3.75")

			card, _ = rep.Stat(report.StatTotalTransactions)
			So(card.Display, ShouldEqual, "3")
		})

		Convey("Then transactions are bucketed per minute with a range", func() {
			c, err := rep.Chart(report.ChartTransactions)
			So(err, ShouldBeNil)
			So(c.Labels, ShouldResemble, []string{"Mar 10, 10:00", "Mar 10, 10:01"})
			So(c.Values, ShouldResemble, []float64{2, 1})
			So(c.Range.First, ShouldEqual, "Mar 10, 2025 10:00:05")
			So(c.Range.Last, ShouldEqual, "Mar 10, 2025 10:01:02")
			So(c.BorderColor, ShouldEqual, "rgba(59, 130, 246, 1)")
		})

		Convey("Then phases share one axis ordered by phase", func() {
			c, _ := rep.Chart(report.ChartPhases)
			So(c.Labels, ShouldHaveLength, 2)
			So(c.Datasets, ShouldHaveLength, 2)
			So(c.Datasets[0].Label, ShouldEqual, "Team Mints")
			So(c.Datasets[0].Data, ShouldResemble, []float64{1, 1})
			So(c.Datasets[1].Label, ShouldEqual, "Whitelist 1")
			So(c.Datasets[1].Data, ShouldResemble, []float64{1, 0})
		})

		Convey("Then SUI sums are exact per minute", func() {
			c, _ := rep.Chart(report.ChartSuiPaid)
			So(c.Values, ShouldResemble, []float64{0.3, 1.5})
			So(*c.Total, ShouldEqual, 1.8)
			So(c.Info[0].Value, ShouldEqual, "1.8 SUI")
		})

		Convey("Then the pies carry one colour per slice", func() {
			c, _ := rep.Chart(report.ChartPaidSplit)
			So(c.Values, ShouldResemble, []float64{2, 1})
			So(c.BackgroundColors, ShouldResemble, []string{"rgba(34, 197, 94, 0.8)", "rgba(148, 163, 184, 0.8)"})
			So(c.BorderColors[0], ShouldEqual, "rgba(34, 197, 94, 1)")

			c, _ = rep.Chart(report.ChartPhaseSplit)
			So(c.Labels, ShouldResemble, []string{"Team Mints", "Whitelist 1"})
			So(c.Values, ShouldResemble, []float64{2, 1})
			So(c.BackgroundColors, ShouldHaveLength, 2)
		})

		Convey("Then both rankings keep full keys", func() {
			c, _ := rep.Chart(report.ChartTopSui)
			So(c.Labels, ShouldResemble, []string{"0xaaaa", "0xcccc"})
			So(c.Entries[0].Key, ShouldEqual, "0xaaaa")
			So(c.Entries[0].Metric, ShouldEqual, 5.5)

			c, _ = rep.Chart(report.ChartTopHeroes)
			So(c.Values, ShouldResemble, []float64{2, 1})
			So(c.Title, ShouldEqual, "Top 10 Players by Heroes Minted")
		})

		Convey("Then the weekly chart passes through", func() {
			c, _ := rep.Chart(report.ChartWeekly)
			So(c.Labels, ShouldResemble, []string{"Mar 10"})
			So(c.Values, ShouldResemble, []float64{3})
		})

		Convey("Then unknown charts are rejected", func() {
			_, err := rep.Chart("radar")
			So(errors.Is(err, report.ErrUnknownChart), ShouldBeTrue)
		})
	})

	Convey("Given another time zone", t, func() {
		b := report.NewBuilder(report.WithLocation(time.FixedZone("UTC+9", 9*3600)))
		rep, err := b.Build(ctx, fixture())
		So(err, ShouldBeNil)

		c, _ := rep.Chart(report.ChartTransactions)
		So(c.Labels, ShouldResemble, []string{"Mar 10, 19:00", "Mar 10, 19:01"})
		So(rep.Location, ShouldEqual, "UTC+9")
	})

	Convey("Given custom phase labels and a smaller top N", t, func() {
		b := report.NewBuilder(
			report.WithPhaseLabels(model.NewPhaseLabels(map[int]string{1: "Early"})),
			report.WithTopN(1),
		)
		rep, err := b.Build(ctx, fixture())
		So(err, ShouldBeNil)

		c, _ := rep.Chart(report.ChartPhaseSplit)
		So(c.Labels, ShouldResemble, []string{"Phase 0", "Early"})
		c, _ = rep.Chart(report.ChartTopSui)
		So(c.Entries, ShouldHaveLength, 1)
	})

	Convey("Given no players and no paid heroes", t, func() {
		var buf bytes.Buffer
		So(logger.Init(logger.WithOutput(&buf), logger.WithFormat("json")), ShouldBeNil)
		log := logger.Get()

		snap := fixture()
		snap.PlayerEvents = nil
		snap.PlayerSuiPaid = nil
		snap.TotalPaidHeroMinted = 0
		snap.Index()

		rep, err := report.NewBuilder(report.WithLogger(log)).Build(ctx, snap)

		Convey("Then averages are n/a and a warning is logged", func() {
			So(err, ShouldBeNil)
			card, _ := rep.Stat(report.StatAvgHeroesPlayer)
			So(card.Value, ShouldBeNil)
			So(card.Display, ShouldEqual, "n/a")
			card, _ = rep.Stat(report.StatAvgSuiPrice)
			So(card.Value, ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "average heroes per player is undefined")
			So(rep.Players, ShouldBeEmpty)
		})
	})

	Convey("Given no transactions", t, func() {
		snap := fixture()
		snap.TxTimes = nil

		_, err := report.NewBuilder().Build(ctx, snap)
		So(errors.Is(err, bucket.ErrEmptySeries), ShouldBeTrue)
	})

	Convey("Given a nil snapshot", t, func() {
		_, err := report.NewBuilder().Build(ctx, nil)
		So(errors.Is(err, report.ErrNilSnapshot), ShouldBeTrue)
	})
}

func TestAverages(t *testing.T) {
	Convey("Given zero denominators", t, func() {
		_, err := report.AverageHeroesPerPlayer(&model.Snapshot{TotalHeroMinted: 4})
		So(errors.Is(err, report.ErrZeroDenominator), ShouldBeTrue)

		_, err = report.AverageSuiPerPaidHero(&model.Snapshot{TotalSuiPaid: 1})
		So(errors.Is(err, report.ErrZeroDenominator), ShouldBeTrue)
	})
}

func TestFormatter(t *testing.T) {
	Convey("Given an English formatter", t, func() {
		f := report.NewFormatter(language.English)
		So(f.Int(1234567), ShouldEqual, "1,234,567")
		So(f.Fixed2(1234.567), ShouldEqual, "1,234.57")
		So(f.Fixed2(2), ShouldEqual, "2.00")
		So(f.Number(1500.5), ShouldEqual, "1,500.5")
	})
}
