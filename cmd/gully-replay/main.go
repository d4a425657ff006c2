package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/albionarcade/gully/internal/replay"
	"github.com/albionarcade/gully/pkg/logger"
)

// Default configuration constants.
const (
	defaultDays    = 90
	defaultTimeout = 5 * time.Minute
)

func main() {
	var (
		playersFile = flag.String("players", "players.csv", "Path to the player CSV")
		startDate   = flag.String("start", "", "Start date YYYY-MM-DD (default today)")
		days        = flag.Int("days", defaultDays, "Number of days to replay")
		windowDays  = flag.Int("window", 0, "No-repeat window override in days")
		clubName    = flag.String("club", "", "Club name used in clue text")
		verbose     = flag.Bool("verbose", false, "Print every pick and clue")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		replay.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	config := &replay.Config{
		PlayersFile: *playersFile,
		StartDate:   *startDate,
		Days:        *days,
		WindowDays:  *windowDays,
		ClubName:    *clubName,
		Verbose:     *verbose,
	}

	if err := replay.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Replay failed: " + err.Error() + "\n")
		return
	}
}
