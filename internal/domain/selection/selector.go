// Package selection implements the deterministic daily player pick with a
// no-repeat window over a persisted recency log.
package selection

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/albionarcade/gully/internal/domain/model"
	"github.com/albionarcade/gully/pkg/logger"
	"github.com/albionarcade/gully/pkg/metrics"
)

// Default selector configuration constants.
const (
	defaultWindowDays = 30
	seedYearMultiple  = 1000 // seed = year*1000 + day-of-year
)

// Table provides read access to the immutable player table.
type Table interface {
	// Players returns every row in table order.
	Players(ctx context.Context) []model.Player

	// ByID returns the player with the given id.
	ByID(ctx context.Context, id int) (model.Player, error)
}

// Log provides access to the append-only (date, player id) recency log.
type Log interface {
	// EntryFor returns the recorded player id for a calendar day, if any.
	EntryFor(ctx context.Context, day time.Time) (int, bool)

	// UsedWithin returns the set of player ids recorded in the trailing
	// window of the given day, the day itself excluded.
	UsedWithin(ctx context.Context, day time.Time, windowDays int) map[int]struct{}

	// Append records a new (day, id) pair and persists it.
	Append(ctx context.Context, day time.Time, id int) error

	// Prune drops entries older than the cutoff day.
	Prune(ctx context.Context, cutoff time.Time) error
}

// Selector picks one player per calendar day.
type Selector struct {
	mu sync.Mutex

	table      Table
	log        Log
	windowDays int
	loc        *time.Location
	logger     logger.Logger
}

// New constructs a Selector over the given table and recency log.
func New(table Table, log Log, opts ...Option) *Selector {
	s := &Selector{
		table:      table,
		log:        log,
		windowDays: defaultWindowDays,
		loc:        time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Day normalizes a timestamp to midnight of its calendar day in the
// selector's configured zone. All date math inside the selector goes
// through this; the server's local zone never leaks in.
func (s *Selector) Day(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// Seed derives the deterministic seed for a calendar day.
// The formula is stable and documented: year*1000 + day-of-year.
func (s *Selector) Seed(day time.Time) int64 {
	day = s.Day(day)
	return int64(day.Year()*seedYearMultiple + day.YearDay())
}

// Select returns the player for the given date.
//
// The first call for a new day appends exactly one log entry; later calls
// for the same day return the recorded pick without appending. The mutex
// serializes concurrent first-requests at day rollover so the log never
// gets a duplicate entry for one date.
func (s *Selector) Select(ctx context.Context, date time.Time) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.Day(date)

	// Already resolved for this day: idempotent return, no append.
	if id, ok := s.log.EntryFor(ctx, day); ok {
		return s.table.ByID(ctx, id)
	}

	// Drop entries that fell out of the window before scanning it.
	cutoff := day.AddDate(0, 0, -s.windowDays)
	if err := s.log.Prune(ctx, cutoff); err != nil {
		return model.Player{}, err
	}

	eligible := s.eligible(ctx)
	if len(eligible) == 0 {
		return model.Player{}, ErrNoPlayers
	}

	used := s.log.UsedWithin(ctx, day, s.windowDays)
	available := make([]model.Player, 0, len(eligible))
	for _, p := range eligible {
		if _, ok := used[p.ID]; !ok {
			available = append(available, p)
		}
	}

	// Pool exhausted: reset the window and re-admit everyone eligible.
	if len(available) == 0 {
		if s.logger != nil {
			s.logger.Warn(ctx, "selection pool exhausted; resetting no-repeat window",
				logger.Time("day", day), logger.Int("window_days", s.windowDays))
		}
		metrics.RecordPoolReset()
		available = eligible
	}
	if len(available) == 0 {
		return model.Player{}, ErrPoolExhausted
	}

	rng := rand.New(rand.NewSource(s.Seed(day))) //nolint:gosec // determinism is the requirement, not randomness quality
	pick := available[rng.Intn(len(available))]

	if err := s.log.Append(ctx, day, pick.ID); err != nil {
		return model.Player{}, err
	}
	metrics.RecordSelection()
	if s.logger != nil {
		s.logger.Info(ctx, "selected player of the day",
			logger.Time("day", day), logger.Int("player_id", pick.ID))
	}
	return pick, nil
}

// eligible filters the table down to players that can front a challenge.
// Players without a single league appearance never come up.
func (s *Selector) eligible(ctx context.Context) []model.Player {
	all := s.table.Players(ctx)
	out := make([]model.Player, 0, len(all))
	for _, p := range all {
		if p.Appearances >= 1 {
			out = append(out, p)
		}
	}
	return out
}

// WindowDays returns the configured no-repeat window length.
func (s *Selector) WindowDays() int {
	return s.windowDays
}
