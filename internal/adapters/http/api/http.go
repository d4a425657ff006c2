// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/albionarcade/gully/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Game operations.
	DailyChallenge(ctx context.Context) (model.Player, model.Clue, error)
	NextClue(ctx context.Context, playerID, revealed int) (model.Clue, bool, error)
	CheckGuess(ctx context.Context, playerID int, first, last string, revealed int) (model.GuessResult, error)

	// Optional AI collaborator.
	CrypticClue(ctx context.Context, playerID int) (string, error)
	PlayerBio(ctx context.Context, playerID int) (string, error)

	// Read-only configuration exposed to the client.
	Debug() bool
	PlayerCount() int
	WindowDays() int

	// Debug surface.
	SetPlayer(ctx context.Context, id int) error
	RecentSelections(ctx context.Context) []model.RecentEntry
	ResetRecents(ctx context.Context) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	challengeHandler *ChallengeHandler
	cluesHandler     *CluesHandler
	guessHandler     *GuessHandler
	aiHandler        *AIHandler
	configHandler    *ConfigHandler
	debugHandler     *DebugHandler
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithAdminKey allows the recent-players debug view in production when the
// caller presents the key.
func WithAdminKey(key string) ServerOption {
	return func(s *Server) {
		s.debugHandler.adminKey = key
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		challengeHandler: NewChallengeHandler(deps),
		cluesHandler:     NewCluesHandler(deps),
		guessHandler:     NewGuessHandler(deps),
		aiHandler:        NewAIHandler(deps),
		configHandler:    NewConfigHandler(deps),
		debugHandler:     NewDebugHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/daily-challenge", MetricsMiddleware(s.challengeHandler.HandleDailyChallenge, "daily_challenge"))
	mux.HandleFunc("/api/clues", MetricsMiddleware(s.cluesHandler.HandleNextClue, "clues"))
	mux.HandleFunc("/api/guess", MetricsMiddleware(s.guessHandler.HandleGuess, "guess"))
	mux.HandleFunc("/api/cryptic-clue", MetricsMiddleware(s.aiHandler.HandleCrypticClue, "cryptic_clue"))
	mux.HandleFunc("/api/player-bio", MetricsMiddleware(s.aiHandler.HandlePlayerBio, "player_bio"))
	mux.HandleFunc("/api/config", MetricsMiddleware(s.configHandler.HandleConfig, "config"))
	mux.HandleFunc("/api/debug/set-player", MetricsMiddleware(s.debugHandler.HandleSetPlayer, "debug_set_player"))
	mux.HandleFunc("/api/debug/recent-players", MetricsMiddleware(s.debugHandler.HandleRecentPlayers, "debug_recent_players"))
	mux.HandleFunc("/api/debug/reset-recent", MetricsMiddleware(s.debugHandler.HandleResetRecent, "debug_reset_recent"))
}

// clueResponse is the wire shape of one clue tier.
type clueResponse struct {
	Tier  int    `json:"tier"`
	Stars int    `json:"stars"`
	Text  string `json:"text"`
}

func toClueResponse(c model.Clue) clueResponse {
	return clueResponse{Tier: c.Tier, Stars: c.Stars, Text: c.Text}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil && status < http.StatusInternalServerError {
		msg = err.Error()
	}
	// 5xx bodies stay generic; internal detail belongs in logs, not
	// responses.
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
