// Package replay drives the daily selector over a date range against a
// real player table. Operators use it to sanity-check a new dataset
// before deploying it: every date gets a pick, the no-repeat window
// holds, and every picked player yields a full clue set.
package replay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/albionarcade/gully/internal/adapters/repository"
	"github.com/albionarcade/gully/internal/domain/clues"
	"github.com/albionarcade/gully/internal/domain/selection"
	"github.com/albionarcade/gully/pkg/logger"
)

const dayLayout = "2006-01-02"

// Config holds the replay run parameters.
type Config struct {
	PlayersFile string
	StartDate   string // YYYY-MM-DD; empty means today
	Days        int
	WindowDays  int
	ClubName    string
	Verbose     bool
}

// Result summarizes a replay run.
type Result struct {
	Days             int
	DistinctPlayers  int
	WindowViolations int
	ClueFailures     int
	PickCounts       map[int]int
}

// Run replays the selector over the configured range and prints a report.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get()

	start := time.Now().UTC()
	if cfg.StartDate != "" {
		parsed, err := time.Parse(dayLayout, cfg.StartDate)
		if err != nil {
			return fmt.Errorf("invalid start date %q: %w", cfg.StartDate, err)
		}
		start = parsed
	}

	table, err := repository.LoadTable(ctx, cfg.PlayersFile, log)
	if err != nil {
		return fmt.Errorf("load players: %w", err)
	}

	// Throwaway recency log; the replay must never touch production state.
	tmpDir, err := os.MkdirTemp("", "gully-replay-")
	if err != nil {
		return fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	recents, err := repository.OpenRecencyLog(filepath.Join(tmpDir, "recents.json"))
	if err != nil {
		return fmt.Errorf("open recency log: %w", err)
	}

	selOpts := []selection.Option{selection.WithLogger(log)}
	if cfg.WindowDays > 0 {
		selOpts = append(selOpts, selection.WithWindowDays(cfg.WindowDays))
	}
	selector := selection.New(table, recents, selOpts...)

	var builderOpts []clues.Option
	if cfg.ClubName != "" {
		builderOpts = append(builderOpts, clues.WithClubName(cfg.ClubName))
	}
	builder := clues.New(builderOpts...)

	eligible := 0
	for _, p := range table.Players(ctx) {
		if p.Appearances >= 1 {
			eligible++
		}
	}

	res, err := replay(ctx, cfg, selector, builder, start, eligible)
	if err != nil {
		return err
	}

	report(cfg, res, table.Len())
	return nil
}

func replay(ctx context.Context, cfg *Config, selector *selection.Selector, builder *clues.Builder, start time.Time, eligible int) (*Result, error) {
	res := &Result{PickCounts: make(map[int]int)}
	window := selector.WindowDays()
	var history []int // picked ids in date order

	for i := 0; i < cfg.Days; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		date := start.AddDate(0, 0, i)

		p, err := selector.Select(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("select %s: %w", date.Format(dayLayout), err)
		}
		res.Days++
		res.PickCounts[p.ID]++

		// A repeat within the trailing window is only legal after a pool
		// reset, and a reset cannot happen while the eligible pool is
		// larger than the window.
		lookback := window
		if lookback > len(history) {
			lookback = len(history)
		}
		for _, prev := range history[len(history)-lookback:] {
			if prev == p.ID && eligible > window {
				res.WindowViolations++
				fmt.Printf("WINDOW VIOLATION %s: player %d repeated\n", date.Format(dayLayout), p.ID)
				break
			}
		}
		history = append(history, p.ID)

		tiers, err := builder.Build(p)
		if err != nil {
			res.ClueFailures++
			fmt.Printf("CLUE FAILURE %s: player %d (%s): %v\n", date.Format(dayLayout), p.ID, p.FullName(), err)
		} else if cfg.Verbose {
			fmt.Printf("%s  #%d %s\n", date.Format(dayLayout), p.ID, p.FullName())
			for _, c := range tiers {
				fmt.Printf("    tier %d (%d star): %s\n", c.Tier, c.Stars, c.Text)
			}
		}
	}

	res.DistinctPlayers = len(res.PickCounts)
	return res, nil
}

func report(cfg *Config, res *Result, tableSize int) {
	fmt.Println()
	fmt.Println("=== Replay Report ===")
	fmt.Printf("Days replayed:      %d\n", res.Days)
	fmt.Printf("Player table size:  %d\n", tableSize)
	fmt.Printf("Distinct players:   %d\n", res.DistinctPlayers)
	fmt.Printf("Window violations:  %d\n", res.WindowViolations)
	fmt.Printf("Clue failures:      %d\n", res.ClueFailures)

	if cfg.Verbose {
		ids := make([]int, 0, len(res.PickCounts))
		for id := range res.PickCounts {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		fmt.Println("Pick distribution:")
		for _, id := range ids {
			fmt.Printf("  player %d: %d\n", id, res.PickCounts[id])
		}
	}

	if res.WindowViolations == 0 && res.ClueFailures == 0 {
		fmt.Println("Result: PASS")
	} else {
		fmt.Println("Result: FAIL")
	}
}

// ShowHelp prints usage information.
func ShowHelp() {
	fmt.Println("Gully Selection Replay Tool")
	fmt.Println()
	fmt.Println("Replays the daily player selection over a date range against a")
	fmt.Println("player CSV, using a throwaway recency log. Checks that every day")
	fmt.Println("gets a pick, the no-repeat window holds, and every picked player")
	fmt.Println("yields a full clue set.")
	fmt.Println()
	fmt.Println("Usage: gully-replay [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -players string   Path to the player CSV (default \"players.csv\")")
	fmt.Println("  -start string     Start date YYYY-MM-DD (default today)")
	fmt.Println("  -days int         Number of days to replay (default 90)")
	fmt.Println("  -window int       No-repeat window override in days")
	fmt.Println("  -club string      Club name used in clue text")
	fmt.Println("  -verbose          Print every pick and clue")
	fmt.Println("  -help             Show this help")
}
