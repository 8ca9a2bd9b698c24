package reportcli

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/mintboard/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging initializes the global logger. Records go to logFile when
// set and to stderr otherwise, keeping stdout for the report itself. The
// returned function closes the log file.
func SetupLogging(logFile string, verbose bool) (func() error, error) {
	var (
		out     io.Writer = os.Stderr
		closeFn           = func() error { return nil }
	)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closeFn = file, file.Close
	}

	if err := logger.Init(logger.WithOutput(out)); err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("failed to set log level: %w", err)
	}
	return closeFn, nil
}

// ShowHelp prints usage information for the report tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `mintreport
==========

Prints the minting report for a snapshot document: headline figures,
timeline summaries, both rankings, the phase distribution and one page
of the players table.

Usage:
  go run ./cmd/mintreport [options]

Options:
  -data string
        Snapshot document (default "data/heroes.json")
  -tz string
        IANA time zone for timeline labels (default "UTC")
  -sort string
        Players table column: rank, sui or heroCount (default SUI descending)
  -dir string
        Sort direction: asc or desc (default "asc")
  -page int
        Players table page (default 1)
  -page-size int
        Players per page (default 15)
  -top int
        Entries per ranking (default 10)
  -log string
        Log file (default: stderr)
  -verbose
        Enable debug logging
  -help
        Show this help message

Examples:
  # Report with default settings
  go run ./cmd/mintreport -data data/heroes.json

  # Tokyo labels, heaviest minters first, second page
  go run ./cmd/mintreport -tz Asia/Tokyo -sort heroCount -dir desc -page 2
`)
}
