// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	service "github.com/okian/mintboard/internal/app"
	"github.com/okian/mintboard/internal/domain/report"
	"github.com/okian/mintboard/internal/domain/table"
	"github.com/okian/mintboard/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	// Report returns the dashboard labelled in tz (configured zone when empty).
	Report(ctx context.Context, tz string) (*report.Report, error)

	// Players returns one page of the all-players table.
	Players(ctx context.Context, q service.PlayersQuery) (table.View[report.PlayerRow], error)

	// Player returns the untruncated row for one address.
	Player(ctx context.Context, address string) (report.PlayerRow, error)
}

// Server wires HTTP routes for the report API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	reportHandler  *ReportHandler
	playersHandler *PlayersHandler
	log            logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	cfg := options{maxPageSize: DefaultMaxPageSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = logger.Get().Named("http")
	}

	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(deps),
		reportHandler:  NewReportHandler(deps),
		playersHandler: NewPlayersHandler(deps, cfg.maxPageSize),
		log:            cfg.log,
	}
}

// Register attaches all HTTP routes to router.
func (s *Server) Register(_ context.Context, router *mux.Router) {
	router.Use(RequestIDMiddleware(s.log))

	router.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	router.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)
	router.HandleFunc("/report", MetricsMiddleware(s.reportHandler.HandleReport, "report")).Methods(http.MethodGet)
	router.HandleFunc("/charts/{name}", MetricsMiddleware(s.reportHandler.HandleChart, "charts")).Methods(http.MethodGet)
	router.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandlePlayers, "players")).Methods(http.MethodGet)
	router.HandleFunc("/players/{address}", MetricsMiddleware(s.playersHandler.HandlePlayer, "player")).Methods(http.MethodGet)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure translates upstream errors into a status and error code.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
