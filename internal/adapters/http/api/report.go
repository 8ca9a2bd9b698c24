// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/okian/mintboard/internal/domain/report"
)

// ReportDependencies defines the interface for report operations.
type ReportDependencies interface {
	Report(ctx context.Context, tz string) (*report.Report, error)
}

// ReportHandler serves the whole dashboard and its individual charts.
type ReportHandler struct {
	deps ReportDependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps ReportDependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// HandleReport handles GET /report?tz= requests.
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.deps.Report(r.Context(), r.URL.Query().Get("tz"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleChart handles GET /charts/{name}?tz= requests.
func (h *ReportHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	rep, err := h.deps.Report(r.Context(), r.URL.Query().Get("tz"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	chart, err := rep.Chart(name)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}
