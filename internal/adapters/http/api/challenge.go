// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/albionarcade/gully/internal/domain/model"
	"github.com/albionarcade/gully/internal/domain/selection"
)

// ChallengeDependencies defines the interface for daily challenge reads.
type ChallengeDependencies interface {
	DailyChallenge(ctx context.Context) (model.Player, model.Clue, error)
}

// ChallengeHandler handles daily challenge requests.
type ChallengeHandler struct {
	deps ChallengeDependencies
}

// NewChallengeHandler creates a new challenge handler.
func NewChallengeHandler(deps ChallengeDependencies) *ChallengeHandler {
	return &ChallengeHandler{deps: deps}
}

// challengeResponse mirrors the OpenAPI schema for GET /api/daily-challenge.
// The player id is opaque to the client; only name lengths leak.
type challengeResponse struct {
	PlayerID        int          `json:"player_id"`
	FirstNameLength int          `json:"first_name_length"`
	LastNameLength  int          `json:"last_name_length"`
	Clue            clueResponse `json:"clue"`
	ClueCount       int          `json:"clue_count"`
}

// HandleDailyChallenge handles GET /api/daily-challenge requests.
func (h *ChallengeHandler) HandleDailyChallenge(w http.ResponseWriter, r *http.Request) {
	const op = "api.daily_challenge"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	p, first, err := h.deps.DailyChallenge(r.Context())
	if err != nil {
		if errors.Is(err, selection.ErrPoolExhausted) || errors.Is(err, selection.ErrNoPlayers) {
			writeError(w, http.StatusServiceUnavailable, "unavailable", NewKind(op, ErrUnavailable))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, challengeResponse{
		PlayerID:        p.ID,
		FirstNameLength: utf8.RuneCountInString(p.FirstName),
		LastNameLength:  utf8.RuneCountInString(p.LastName),
		Clue:            toClueResponse(first),
		ClueCount:       model.TierCount,
	})
}
