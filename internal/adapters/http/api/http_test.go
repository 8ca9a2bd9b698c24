package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/okian/mintboard/internal/adapters/http/api"
	service "github.com/okian/mintboard/internal/app"
	"github.com/okian/mintboard/internal/domain/report"
	"github.com/okian/mintboard/internal/domain/table"
	"github.com/okian/mintboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

const fullAddress = "0xd4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a1b2c3d4e5"

// Mock implementations for testing
type mockDependencies struct {
	rep        *report.Report
	reportErr  error
	playersErr error
	lastTZ     string
	lastQuery  service.PlayersQuery
}

func (m *mockDependencies) GetStats() service.Stats {
	return service.Stats{Started: true, DataPath: "heroes.json", Players: 1, Events: 2}
}

func (m *mockDependencies) Report(_ context.Context, tz string) (*report.Report, error) {
	m.lastTZ = tz
	if tz == "Mars/Olympus_Mons" {
		return nil, fmt.Errorf("%w: %q", service.ErrInvalidTimezone, tz)
	}
	if m.reportErr != nil {
		return nil, m.reportErr
	}
	return m.rep, nil
}

func (m *mockDependencies) Players(_ context.Context, q service.PlayersQuery) (table.View[report.PlayerRow], error) {
	m.lastQuery = q
	if m.playersErr != nil {
		return table.View[report.PlayerRow]{}, m.playersErr
	}
	return table.View[report.PlayerRow]{
		Rows:       []table.Row[report.PlayerRow]{{Rank: 1, Record: m.rep.Players[0]}},
		Page:       1,
		PageSize:   report.PlayersPageSize,
		TotalPages: 1,
		Total:      len(m.rep.Players),
	}, nil
}

func (m *mockDependencies) Player(_ context.Context, address string) (report.PlayerRow, error) {
	for _, row := range m.rep.Players {
		if row.Address == address {
			return row, nil
		}
	}
	return report.PlayerRow{}, fmt.Errorf("%q: %w", address, service.ErrPlayerNotFound)
}

func newDeps() *mockDependencies {
	return &mockDependencies{
		rep: &report.Report{
			Fingerprint: "abc",
			Location:    "UTC",
			Charts: []report.Chart{
				{Name: report.ChartTransactions, Title: "Transactions per Minute", Kind: report.KindLine,
					Labels: []string{"Mar 10, 10:00"}, Values: []float64{2}},
			},
			Players: []report.PlayerRow{
				{Rank: 1, Address: fullAddress, ShortAddress: "0xd4e5f6a7...b2c3d4e5", SuiPaid: 8.5, HeroCount: 2},
			},
		},
	}
}

func newRouter(deps api.Dependencies) *mux.Router {
	router := mux.NewRouter()
	api.NewServer(deps, api.WithMaxPageSize(50)).Register(context.Background(), router)
	return router
}

func serve(router http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := newDeps()
		router := newRouter(deps)

		Convey("Then the health endpoint exposes metrics", func() {
			w := serve(router, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "mintboard_")
		})

		Convey("Then the stats endpoint returns service stats", func() {
			w := serve(router, http.MethodGet, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats service.Stats
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats.Started, ShouldBeTrue)
			So(stats.Events, ShouldEqual, 2)
		})

		Convey("Then every response carries a request id", func() {
			w := serve(router, http.MethodGet, "/stats")
			So(w.Header().Get(api.HeaderRequestID), ShouldNotBeEmpty)
		})

		Convey("Then a client request id is echoed", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", http.NoBody)
			req.Header.Set(api.HeaderRequestID, "req-42")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			So(w.Header().Get(api.HeaderRequestID), ShouldEqual, "req-42")
		})

		Convey("Then unknown routes are not found", func() {
			w := serve(router, http.MethodGet, "/unknown")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then other methods are rejected", func() {
			w := serve(router, http.MethodPost, "/report")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestReportHandler(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := newDeps()
		router := newRouter(deps)

		Convey("When requesting the report with a time zone", func() {
			w := serve(router, http.MethodGet, "/report?tz=Asia/Tokyo")

			Convey("Then the report is returned as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
				So(deps.lastTZ, ShouldEqual, "Asia/Tokyo")

				var rep report.Report
				So(json.Unmarshal(w.Body.Bytes(), &rep), ShouldBeNil)
				So(rep.Fingerprint, ShouldEqual, "abc")
				So(rep.Players, ShouldHaveLength, 1)
			})
		})

		Convey("When requesting an unknown time zone", func() {
			w := serve(router, http.MethodGet, "/report?tz=Mars/Olympus_Mons")

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "invalid_timezone")
			})
		})

		Convey("When the service is not started", func() {
			deps.reportErr = service.ErrNotStarted
			w := serve(router, http.MethodGet, "/report")

			Convey("Then it is unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(decodeError(w)["code"], ShouldEqual, "not_started")
			})
		})

		Convey("When requesting a known chart", func() {
			w := serve(router, http.MethodGet, "/charts/"+report.ChartTransactions)

			Convey("Then only that chart is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var chart report.Chart
				So(json.Unmarshal(w.Body.Bytes(), &chart), ShouldBeNil)
				So(chart.Name, ShouldEqual, report.ChartTransactions)
				So(chart.Values, ShouldResemble, []float64{2})
			})
		})

		Convey("When requesting an unknown chart", func() {
			w := serve(router, http.MethodGet, "/charts/radar")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(decodeError(w)["code"], ShouldEqual, "not_found")
			})
		})
	})
}

func TestPlayersHandler(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := newDeps()
		router := newRouter(deps)

		Convey("When listing players with query parameters", func() {
			w := serve(router, http.MethodGet, "/players?sort=heroCount&dir=desc&page=2&page_size=5")

			Convey("Then the query reaches the service", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastQuery, ShouldResemble, service.PlayersQuery{
					Sort: "heroCount", Direction: "desc", Page: 2, PageSize: 5,
				})
			})

			Convey("Then the table view is returned", func() {
				var view table.View[report.PlayerRow]
				So(json.Unmarshal(w.Body.Bytes(), &view), ShouldBeNil)
				So(view.Total, ShouldEqual, 1)
				So(view.Rows[0].Record.Address, ShouldEqual, fullAddress)
			})
		})

		Convey("When the page is not a number", func() {
			w := serve(router, http.MethodGet, "/players?page=two")

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "bad_request")
			})
		})

		Convey("When the page size exceeds the limit", func() {
			w := serve(router, http.MethodGet, "/players?page_size=51")

			Convey("Then the limit is reported", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "limit_exceeded")
			})
		})

		Convey("When the table rejects the sort", func() {
			deps.playersErr = fmt.Errorf("%q: %w", "shortAddress", table.ErrNotSortable)
			w := serve(router, http.MethodGet, "/players?sort=shortAddress")

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["message"], ShouldContainSubstring, "not sortable")
			})
		})

		Convey("When looking up a known player", func() {
			w := serve(router, http.MethodGet, "/players/"+fullAddress)

			Convey("Then the full address is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var row report.PlayerRow
				So(json.Unmarshal(w.Body.Bytes(), &row), ShouldBeNil)
				So(row.Address, ShouldEqual, fullAddress)
				So(row.HeroCount, ShouldEqual, 2)
			})
		})

		Convey("When looking up an unknown player", func() {
			w := serve(router, http.MethodGet, "/players/0xnobody")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}
