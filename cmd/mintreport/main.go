package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/mintboard/internal/domain/ranking"
	"github.com/okian/mintboard/internal/domain/report"
	"github.com/okian/mintboard/internal/reportcli"
)

// Default configuration constants.
const (
	defaultDataPath = "data/heroes.json"
	defaultTimeout  = 2 * time.Minute
)

func main() {
	var (
		dataPath = flag.String("data", defaultDataPath, "Snapshot document")
		timezone = flag.String("tz", "UTC", "IANA time zone for timeline labels")
		sortKey  = flag.String("sort", "", "Players table column: rank, sui or heroCount")
		dir      = flag.String("dir", "asc", "Sort direction: asc or desc")
		page     = flag.Int("page", 1, "Players table page")
		pageSize = flag.Int("page-size", report.PlayersPageSize, "Players per page")
		topN     = flag.Int("top", ranking.DefaultLimit, "Entries per ranking")
		logFile  = flag.String("log", "", "Log file (default: stderr)")
		verbose  = flag.Bool("verbose", false, "Enable debug logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		reportcli.ShowHelp(os.Stdout)
		return
	}

	closeLog, err := reportcli.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)

	config := &reportcli.Config{
		DataPath:  *dataPath,
		Timezone:  *timezone,
		Sort:      *sortKey,
		Direction: *dir,
		Page:      *page,
		PageSize:  *pageSize,
		TopN:      *topN,
		LogFile:   *logFile,
		Verbose:   *verbose,
	}

	runErr := reportcli.Run(ctx, config, os.Stdout)
	cancel()
	stop()
	_ = closeLog()

	if runErr != nil {
		os.Stderr.WriteString("Report failed: " + runErr.Error() + "\n")
		os.Exit(1)
	}
}
