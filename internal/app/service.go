// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // request time zones resolve without a host zoneinfo database

	"github.com/okian/mintboard/internal/adapters/source"
	"github.com/okian/mintboard/internal/domain/model"
	"github.com/okian/mintboard/internal/domain/ranking"
	"github.com/okian/mintboard/internal/domain/report"
	"github.com/okian/mintboard/internal/domain/table"
	"github.com/okian/mintboard/pkg/logger"
	"github.com/okian/mintboard/pkg/metrics"
	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/text/language"
)

// millisecondsPerSecond converts build durations for the latency histogram.
const millisecondsPerSecond = 1000

// PlayersQuery selects one page of the players table.
type PlayersQuery struct {
	// Sort is a column key; empty keeps the default SUI-descending order.
	Sort string
	// Direction is "asc" (default) or "desc".
	Direction string
	// Page is 1-based and clamped to the available pages.
	Page int
	// PageSize overrides the configured page size when positive.
	PageSize int
}

// Stats summarizes the service state for monitoring.
type Stats struct {
	Started      bool      `json:"started"`
	DataPath     string    `json:"data_path"`
	Fingerprint  string    `json:"fingerprint,omitempty"`
	Players      int       `json:"players"`
	Events       int       `json:"events"`
	CacheEnabled bool      `json:"cache_enabled"`
	CacheEntries int       `json:"cache_entries"`
	LoadedAt     time.Time `json:"loaded_at,omitzero"`
}

// Service owns the current snapshot and the reports built from it.
type Service struct {
	mu sync.RWMutex

	// Configuration
	dataPath     string
	loc          *time.Location
	labels       model.PhaseLabels
	topN         int
	pageSize     int
	cacheEnabled bool
	format       *report.Formatter

	// State
	snapshot *model.Snapshot
	loadedAt time.Time
	started  bool
	cache    *xsync.Map[string, *report.Report]

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataPath:     "data/heroes.json",
		loc:          time.UTC,
		labels:       model.DefaultPhaseLabels(),
		topN:         ranking.DefaultLimit,
		pageSize:     report.PlayersPageSize,
		cacheEnabled: true,
		format:       report.NewFormatter(language.English),
		cache:        xsync.NewMap[string, *report.Report](),
		logger:       nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the snapshot. It is a no-op on a started service.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting mintboard service...", logger.String("data_path", s.dataPath))

	if err := s.loadLocked(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	s.started = true
	s.logger.Info(ctx, "mintboard service started",
		logger.Int("players", s.snapshot.PlayerCount()),
		logger.Int("events", s.snapshot.EventCount()),
		logger.String("timezone", s.loc.String()),
		logger.Bool("cache", s.cacheEnabled),
	)
	return nil
}

// Stop releases the snapshot and drops cached reports.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping mintboard service...")
	s.snapshot = nil
	s.cache.Clear()
	metrics.UpdateCacheEntries(0)
	s.started = false
	s.logger.Info(context.Background(), "mintboard service stopped")
}

// Reload re-reads the snapshot document. On failure the previous snapshot
// keeps being served.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	return s.loadLocked(ctx)
}

func (s *Service) loadLocked(ctx context.Context) error {
	snap, err := source.ReadFile(ctx, s.dataPath)
	if err != nil {
		metrics.RecordSnapshotLoadError()
		s.logger.Error(ctx, "failed to load snapshot", logger.String("data_path", s.dataPath), logger.Error(err))
		return err
	}

	previous := ""
	if s.snapshot != nil {
		previous = s.snapshot.Fingerprint
	}
	s.snapshot = snap
	s.loadedAt = time.Now()

	if previous != snap.Fingerprint {
		s.cache.Clear()
		metrics.UpdateCacheEntries(0)
	}
	metrics.RecordSnapshotLoad(snap.PlayerCount(), snap.EventCount(), s.loadedAt.Unix())

	s.logger.Info(ctx, "snapshot loaded",
		logger.String("fingerprint", snap.Fingerprint),
		logger.Bool("changed", previous != snap.Fingerprint),
	)
	return nil
}

// Report returns the report for the current snapshot labelled in tz, or in
// the configured zone when tz is empty. Reports are cached per snapshot
// content and zone.
func (s *Service) Report(ctx context.Context, tz string) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}

	loc, err := s.location(tz)
	if err != nil {
		return nil, err
	}

	key := s.snapshot.Fingerprint + "|" + loc.String()
	if s.cacheEnabled {
		if rep, ok := s.cache.Load(key); ok {
			metrics.RecordCacheHit()
			return rep, nil
		}
		metrics.RecordCacheMiss()
	}

	builder := report.NewBuilder(
		report.WithLocation(loc),
		report.WithPhaseLabels(s.labels),
		report.WithTopN(s.topN),
		report.WithLogger(s.logger.Named("report")),
	)

	start := time.Now()
	rep, err := builder.Build(ctx, s.snapshot)
	if err != nil {
		metrics.RecordReportBuildError()
		s.logger.Error(ctx, "failed to build report", logger.String("timezone", loc.String()), logger.Error(err))
		return nil, err
	}
	elapsed := time.Since(start)
	metrics.RecordReportBuild(elapsed.Seconds() * millisecondsPerSecond)

	if s.cacheEnabled {
		s.cache.Store(key, rep)
		metrics.UpdateCacheEntries(s.cache.Size())
	}

	s.logger.Debug(ctx, "report built",
		logger.String("timezone", loc.String()),
		logger.Duration("elapsed", elapsed),
	)
	return rep, nil
}

func (s *Service) location(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return s.loc, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}
	return loc, nil
}

// Players returns one page of the all-players table.
func (s *Service) Players(ctx context.Context, q PlayersQuery) (table.View[report.PlayerRow], error) {
	rep, err := s.Report(ctx, "")
	if err != nil {
		return table.View[report.PlayerRow]{}, err
	}

	size := s.pageSize
	if q.PageSize > 0 {
		size = q.PageSize
	}
	tbl, err := report.NewPlayersTable(rep.Players, s.format, table.WithPageSize(size))
	if err != nil {
		return table.View[report.PlayerRow]{}, err
	}

	if q.Sort != "" {
		dir := table.Asc
		if q.Direction != "" {
			if dir, err = table.ParseDirection(q.Direction); err != nil {
				return table.View[report.PlayerRow]{}, err
			}
		}
		if err := tbl.SetSort(table.SortState{Key: q.Sort, Direction: dir}); err != nil {
			return table.View[report.PlayerRow]{}, err
		}
	}
	tbl.SetPage(q.Page)

	return tbl.View(), nil
}

// Player returns the full row for address.
func (s *Service) Player(ctx context.Context, address string) (report.PlayerRow, error) {
	rep, err := s.Report(ctx, "")
	if err != nil {
		return report.PlayerRow{}, err
	}
	for _, row := range rep.Players {
		if row.Address == address {
			return row, nil
		}
	}
	return report.PlayerRow{}, fmt.Errorf("%q: %w", address, ErrPlayerNotFound)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Started:      s.started,
		DataPath:     s.dataPath,
		CacheEnabled: s.cacheEnabled,
		CacheEntries: s.cache.Size(),
	}
	if s.started && s.snapshot != nil {
		stats.Fingerprint = s.snapshot.Fingerprint
		stats.Players = s.snapshot.PlayerCount()
		stats.Events = s.snapshot.EventCount()
		stats.LoadedAt = s.loadedAt
	}
	return stats
}
