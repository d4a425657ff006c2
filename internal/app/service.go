// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/albionarcade/gully/internal/adapters/ai"
	repository "github.com/albionarcade/gully/internal/adapters/repository"
	"github.com/albionarcade/gully/internal/domain/clues"
	"github.com/albionarcade/gully/internal/domain/guess"
	"github.com/albionarcade/gully/internal/domain/model"
	"github.com/albionarcade/gully/internal/domain/selection"
	"github.com/albionarcade/gully/pkg/logger"
	"github.com/albionarcade/gully/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultPlayersFile = "players.csv"
	defaultRecentsFile = "recent_players.json"
)

// Service wires the player table, recency log, selector, clue builder,
// guess validator and the optional AI collaborator.
type Service struct {
	mu sync.RWMutex

	// Core components
	table    *repository.Table
	recents  *repository.RecencyLog
	selector *selection.Selector
	builder  *clues.Builder
	aiClient *ai.Client

	// Configuration
	playersFile string
	recentsFile string
	windowDays  int
	loc         *time.Location
	clubName    string
	debug       bool

	// State
	started    bool
	overrideID int // debug-only forced pick; -1 when unset
	now        func() time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPlayersFile sets the player table CSV path.
func WithPlayersFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.playersFile = path
		}
	}
}

// WithRecentsFile sets the recency log JSON path.
func WithRecentsFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.recentsFile = path
		}
	}
}

// WithWindowDays sets the no-repeat window length.
func WithWindowDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

// WithLocation sets the canonical daily-rollover timezone.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClubName sets the club noun used in clue text.
func WithClubName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.clubName = name
		}
	}
}

// WithDebug enables the debug surface (player override, recency inspect/clear).
func WithDebug(debug bool) Option {
	return func(s *Service) {
		s.debug = debug
	}
}

// WithAIClient sets the optional Gemini collaborator.
func WithAIClient(c *ai.Client) Option {
	return func(s *Service) {
		s.aiClient = c
	}
}

// WithClock overrides the time source. Tests use this to pin the day.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		playersFile: defaultPlayersFile,
		recentsFile: defaultRecentsFile,
		windowDays:  0, // selector default applies
		loc:         time.UTC,
		clubName:    "",
		overrideID:  -1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the player table (fatal when empty or unreadable), opens the
// recency log and primes today's selection so the first request of the day
// never pays the selection cost.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	table, err := repository.LoadTable(ctx, s.playersFile, s.logger)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	recents, err := repository.OpenRecencyLog(s.recentsFile, repository.WithLogLocation(s.loc))
	if err != nil {
		s.mu.Unlock()
		return err
	}

	selOpts := []selection.Option{
		selection.WithLocation(s.loc),
		selection.WithLogger(s.logger),
	}
	if s.windowDays > 0 {
		selOpts = append(selOpts, selection.WithWindowDays(s.windowDays))
	}

	var builderOpts []clues.Option
	if s.clubName != "" {
		builderOpts = append(builderOpts, clues.WithClubName(s.clubName))
	}

	s.table = table
	s.recents = recents
	s.selector = selection.New(table, recents, selOpts...)
	s.builder = clues.New(builderOpts...)
	s.started = true
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info(ctx, "service started",
			logger.Int("players", table.Len()),
			logger.Int("recent_entries", recents.Len()),
			logger.Bool("debug", s.debug),
			logger.Bool("ai_enabled", s.aiClient != nil && s.aiClient.Enabled()))
	}

	return s.EnsureToday(ctx)
}

// Stop releases service resources. State is already on disk after every
// append, so there is nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
}

// EnsureToday resolves (and records, if new) today's selection. The day
// rollover ticker in main calls this so the pick exists before the first
// request of a new day.
func (s *Service) EnsureToday(ctx context.Context) error {
	_, err := s.currentPlayer(ctx)
	return err
}

// currentPlayer returns the player of the current day, honoring the
// debug override when set.
func (s *Service) currentPlayer(ctx context.Context) (model.Player, error) {
	s.mu.RLock()
	override := s.overrideID
	debug := s.debug
	s.mu.RUnlock()

	if debug && override >= 0 {
		return s.table.ByID(ctx, override)
	}
	return s.selector.Select(ctx, s.now())
}

// DailyChallenge returns today's player and the first clue tier.
func (s *Service) DailyChallenge(ctx context.Context) (model.Player, model.Clue, error) {
	p, err := s.currentPlayer(ctx)
	if err != nil {
		return model.Player{}, model.Clue{}, err
	}
	tiers, err := s.builder.Build(p)
	if err != nil {
		return model.Player{}, model.Clue{}, err
	}
	metrics.RecordClueRevealed(tiers[0].Tier)
	return p, tiers[0], nil
}

// NextClue returns the clue after the given revealed count for a player.
// done is true once all five tiers are out.
func (s *Service) NextClue(ctx context.Context, playerID, revealed int) (model.Clue, bool, error) {
	if revealed >= model.TierCount {
		return model.Clue{}, true, nil
	}
	if revealed < 0 {
		revealed = 0
	}
	p, err := s.table.ByID(ctx, playerID)
	if err != nil {
		return model.Clue{}, false, err
	}
	tiers, err := s.builder.Build(p)
	if err != nil {
		return model.Clue{}, false, err
	}
	clue := tiers[revealed]
	metrics.RecordClueRevealed(clue.Tier)
	return clue, false, nil
}

// CheckGuess validates a name guess against a player. On a correct guess
// the result carries the star value of the highest tier revealed so far.
func (s *Service) CheckGuess(ctx context.Context, playerID int, first, last string, revealed int) (model.GuessResult, error) {
	p, err := s.table.ByID(ctx, playerID)
	if err != nil {
		return model.GuessResult{}, err
	}

	ok, err := guess.Validate(first, last, p)
	if errors.Is(err, guess.ErrEmptyGuess) {
		metrics.RecordGuessRejected()
		return model.GuessResult{Rejected: true}, nil
	}
	if err != nil {
		return model.GuessResult{}, err
	}

	metrics.RecordGuess(ok)
	if !ok {
		return model.GuessResult{}, nil
	}

	if revealed < 1 {
		revealed = 1
	}
	if revealed > model.TierCount {
		revealed = model.TierCount
	}
	stars := model.StarsForTier(revealed)
	metrics.RecordStarsAwarded(stars)
	return model.GuessResult{Correct: true, Stars: stars, FullName: p.FullName()}, nil
}

// CrypticClue proxies the AI collaborator for a wordplay clue.
func (s *Service) CrypticClue(ctx context.Context, playerID int) (string, error) {
	p, err := s.table.ByID(ctx, playerID)
	if err != nil {
		return "", err
	}
	if s.aiClient == nil {
		return "", ai.ErrDisabled
	}
	return s.aiClient.CrypticClue(ctx, p)
}

// PlayerBio proxies the AI collaborator for a short biography.
func (s *Service) PlayerBio(ctx context.Context, playerID int) (string, error) {
	p, err := s.table.ByID(ctx, playerID)
	if err != nil {
		return "", err
	}
	if s.aiClient == nil {
		return "", ai.ErrDisabled
	}
	return s.aiClient.Bio(ctx, p)
}

// Debug reports whether the debug surface is enabled.
func (s *Service) Debug() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debug
}

// PlayerCount returns the number of loaded players.
func (s *Service) PlayerCount() int {
	return s.table.Len()
}

// WindowDays returns the configured no-repeat window length.
func (s *Service) WindowDays() int {
	return s.selector.WindowDays()
}

// SetPlayer forces the current selection to the given id (debug only).
func (s *Service) SetPlayer(ctx context.Context, id int) error {
	if _, err := s.table.ByID(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.overrideID = id
	s.mu.Unlock()
	if s.logger != nil {
		s.logger.Warn(ctx, "debug player override set", logger.Int("player_id", id))
	}
	return nil
}

// RecentSelections returns the recency log resolved to player names
// (debug only).
func (s *Service) RecentSelections(ctx context.Context) []model.RecentEntry {
	records := s.recents.Snapshot(ctx)
	out := make([]model.RecentEntry, 0, len(records))
	for _, r := range records {
		name := ""
		if p, err := s.table.ByID(ctx, r.PlayerID); err == nil {
			name = p.FullName()
		}
		out = append(out, model.RecentEntry{
			Date:     r.Date.Format("2006-01-02"),
			PlayerID: r.PlayerID,
			Name:     name,
		})
	}
	return out
}

// ResetRecents clears the recency log and the debug override (debug only).
func (s *Service) ResetRecents(ctx context.Context) error {
	s.mu.Lock()
	s.overrideID = -1
	s.mu.Unlock()
	return s.recents.Clear(ctx)
}

// GetStats returns current service statistics.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := map[string]interface{}{
		"started":       s.started,
		"debug":         s.debug,
		"recentEntries": 0,
		"playerCount":   0,
	}
	if s.table != nil {
		stats["playerCount"] = s.table.Len()
	}
	if s.recents != nil {
		stats["recentEntries"] = s.recents.Len()
	}
	if s.selector != nil {
		stats["windowDays"] = s.selector.WindowDays()
	}
	stats["aiEnabled"] = s.aiClient != nil && s.aiClient.Enabled()
	return stats
}
