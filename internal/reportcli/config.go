package reportcli

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned for flag combinations Run cannot serve.
var ErrInvalidConfig = errors.New("invalid cli config")

// Config holds the options of one report run.
type Config struct {
	DataPath  string // Snapshot document to load
	Timezone  string // IANA zone for timeline labels; empty means UTC
	Sort      string // Players table column key; empty keeps SUI descending
	Direction string // "asc" or "desc"
	Page      int    // Players table page, 1-based
	PageSize  int    // Players table page size
	TopN      int    // Entries per ranking
	LogFile   string // Log destination; empty means stderr
	Verbose   bool   // Enable debug logging
}

// Validate rejects values that would only fail later with a less precise error.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.DataPath) == "":
		return fmt.Errorf("%w: -data must not be empty", ErrInvalidConfig)
	case c.PageSize <= 0:
		return fmt.Errorf("%w: -page-size must be positive, got %d", ErrInvalidConfig, c.PageSize)
	case c.TopN <= 0:
		return fmt.Errorf("%w: -top must be positive, got %d", ErrInvalidConfig, c.TopN)
	}
	return nil
}
