package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	app "github.com/okian/mintboard/internal/app"
	"github.com/okian/mintboard/internal/config"
	"github.com/okian/mintboard/pkg/logger"
	"github.com/okian/mintboard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

const sampleSnapshot = `{
  "total_hero_minted": 1,
  "total_sui_paid": 2.5,
  "total_paid_hero_minted": 1,
  "weekly_hero_minted": [],
  "player_hero_minted": {
    "0xabc": [{"digest": "d1", "hero_id": "h1", "timestamp": 1741600805000, "is_paid": true, "phase": 1}]
  },
  "player_sui_paid_chart": {"0xabc": 2.5},
  "tx_time_chart": {"d1": 1741600805000},
  "phase_time_chart": {"1": [1741600805000]},
  "sui_paid_amount_chart": [{"amount": 2.5, "timestamp": 1741600805000}]
}`

func writeSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "heroes.json")
	if err := os.WriteFile(path, []byte(sampleSnapshot), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			t.Setenv("MINTBOARD_ADDR", ":8080")
			t.Setenv("MINTBOARD_TIMEZONE", "Asia/Tokyo")
			t.Setenv("MINTBOARD_TOP_N", "5")

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Timezone, convey.ShouldEqual, "Asia/Tokyo")
				convey.So(cfg.TopN, convey.ShouldEqual, 5)
			})

			convey.Convey("And the service should be buildable from it", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				svc, err := newService(cfg, logger.Get())
				convey.So(err, convey.ShouldBeNil)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing invalid configuration", func() {
			cfg := config.New()
			cfg.Timezone = "Mars/Olympus_Mons"

			convey.Convey("Then the service cannot be built", func() {
				svc, err := newService(cfg, logger.Get())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(svc, convey.ShouldBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should return once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service metrics updater", func() {
			svc := app.New()

			convey.Convey("Then it should return once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startServiceMetricsUpdater(ctx, svc)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing the reloader", func() {
			svc := app.New()

			convey.Convey("Then it should return once the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startReloader(ctx, svc, logger.Get())
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing metrics updates", func() {
			convey.So(func() { updateSystemMetrics() }, convey.ShouldNotPanic)
			convey.So(func() { updateServiceMetrics(app.New()) }, convey.ShouldNotPanic)
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given a started service behind the router", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cfg := config.New()
		cfg.DataPath = writeSnapshot(t)
		svc, err := newService(cfg, logger.Get())
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		router := newRouter(ctx, svc)

		get := func(target string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, http.NoBody))
			return w
		}

		convey.Convey("Then the API routes are served", func() {
			convey.So(get("/stats").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/report").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/charts/top-sui").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/players?page=1").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/players/0xabc").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("Then the documentation routes are served", func() {
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("Then the cache gauge follows the service", func() {
			convey.So(get("/report").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(svc.GetStats().CacheEntries, convey.ShouldEqual, 1)
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})
	})
}
