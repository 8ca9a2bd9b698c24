// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	service "github.com/okian/mintboard/internal/app"
	"github.com/okian/mintboard/internal/domain/report"
	"github.com/okian/mintboard/internal/domain/table"
)

// PlayersDependencies defines the interface for player table operations.
type PlayersDependencies interface {
	Players(ctx context.Context, q service.PlayersQuery) (table.View[report.PlayerRow], error)
	Player(ctx context.Context, address string) (report.PlayerRow, error)
}

// PlayersHandler serves the all-players table.
type PlayersHandler struct {
	deps        PlayersDependencies
	maxPageSize int
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayersDependencies, maxPageSize int) *PlayersHandler {
	return &PlayersHandler{deps: deps, maxPageSize: maxPageSize}
}

// HandlePlayers handles GET /players?sort=&dir=&page=&page_size= requests.
func (h *PlayersHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_players"
	query := r.URL.Query()

	page, err := intParam(query, "page")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	size, err := intParam(query, "page_size")
	if err != nil || size < 0 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: page_size: %w", op, ErrBadRequest))
		return
	}
	if size > h.maxPageSize {
		writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%s: %d > %d: %w", op, size, h.maxPageSize, ErrLimitExceeded))
		return
	}

	view, err := h.deps.Players(r.Context(), service.PlayersQuery{
		Sort:      strings.TrimSpace(query.Get("sort")),
		Direction: query.Get("dir"),
		Page:      page,
		PageSize:  size,
	})
	if err != nil {
		writeFailure(w, fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandlePlayer handles GET /players/{address} requests.
func (h *PlayersHandler) HandlePlayer(w http.ResponseWriter, r *http.Request) {
	row, err := h.deps.Player(r.Context(), mux.Vars(r)["address"])
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// intParam reads an optional integer query parameter; absent means 0.
func intParam(query url.Values, name string) (int, error) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", name, raw, ErrBadRequest)
	}
	return n, nil
}
