// Package reportcli runs the minting report once from the command line and
// renders it as plain text.
package reportcli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	service "github.com/okian/mintboard/internal/app"
	"github.com/okian/mintboard/pkg/logger"
)

// Run loads the snapshot, builds the report and writes it to out.
func Run(ctx context.Context, config *Config, out io.Writer) error {
	if err := config.Validate(); err != nil {
		return err
	}
	start := time.Now()
	log := logger.Get().Named("mintreport")

	log.Info(ctx, "starting mint report",
		logger.String("data", config.DataPath),
		logger.String("timezone", config.Timezone),
		logger.String("sort", config.Sort),
		logger.String("direction", config.Direction),
		logger.Int("page", config.Page),
		logger.Int("pageSize", config.PageSize),
		logger.Bool("verbose", config.Verbose))

	svc, err := newService(config, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	defer svc.Stop()

	// The zone is the service default so the players table reuses this report.
	rep, err := svc.Report(ctx, "")
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	view, err := svc.Players(ctx, service.PlayersQuery{
		Sort:      config.Sort,
		Direction: config.Direction,
		Page:      config.Page,
	})
	if err != nil {
		return fmt.Errorf("players table: %w", err)
	}

	if err := newRenderer(out).render(rep, view); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	log.Info(ctx, "mint report completed", logger.Duration("elapsed", time.Since(start)))
	return nil
}

// newService builds a report service whose default zone is the configured one.
func newService(config *Config, log logger.Logger) (*service.Service, error) {
	loc := time.UTC
	if tz := strings.TrimSpace(config.Timezone); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", service.ErrInvalidTimezone, tz)
		}
		loc = l
	}
	return service.New(
		service.WithDataPath(config.DataPath),
		service.WithLocation(loc),
		service.WithTopN(config.TopN),
		service.WithPlayersPageSize(config.PageSize),
		service.WithLogger(log),
	), nil
}
