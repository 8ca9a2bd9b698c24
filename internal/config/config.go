// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config with defaults; Load layers file and env on top.
// - Validation failures wrap ErrInvalidConfig, loader failures ErrLoadConfig.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone names resolve on hosts without a zoneinfo database

	"github.com/okian/mintboard/internal/domain/model"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataPath is the snapshot document to serve.
	DataPath string `koanf:"data_path"`

	// Timezone is the IANA zone used for timeline labels.
	Timezone string `koanf:"timezone"`

	// TopN caps both player rankings.
	TopN int `koanf:"top_n"`

	// PlayersPageSize is the default page size of the players table.
	PlayersPageSize int `koanf:"players_page_size"`

	// PhaseLabels overrides phase display names, keyed by phase number.
	PhaseLabels map[string]string `koanf:"phase_labels"`

	// CacheEnabled keeps built reports until the snapshot changes.
	CacheEnabled bool `koanf:"cache_enabled"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		DataPath:        "data/heroes.json",
		Timezone:        "UTC",
		TopN:            10,
		PlayersPageSize: 15,
		CacheEnabled:    true,
	}
}

// Validate checks the values Load cannot type-check.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.DataPath == "" {
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.TopN <= 0 {
		return fmt.Errorf("%w: top_n must be positive, got %d", ErrInvalidConfig, c.TopN)
	}
	if c.PlayersPageSize <= 0 {
		return fmt.Errorf("%w: players_page_size must be positive, got %d", ErrInvalidConfig, c.PlayersPageSize)
	}
	if _, err := c.Phases(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// Phases merges PhaseLabels over the default phase names.
func (c *Config) Phases() (model.PhaseLabels, error) {
	names := model.DefaultPhaseNames()
	for key, name := range c.PhaseLabels {
		phase, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return model.PhaseLabels{}, fmt.Errorf("%w: phase_labels key %q is not an integer", ErrInvalidConfig, key)
		}
		names[phase] = name
	}
	return model.NewPhaseLabels(names), nil
}
