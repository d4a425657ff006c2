// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/albionarcade/gully/internal/adapters/ai"
	"github.com/albionarcade/gully/internal/adapters/repository"
)

// AIDependencies defines the interface for the optional AI collaborator.
type AIDependencies interface {
	CrypticClue(ctx context.Context, playerID int) (string, error)
	PlayerBio(ctx context.Context, playerID int) (string, error)
}

// AIHandler handles cryptic-clue and player-bio requests.
type AIHandler struct {
	deps AIDependencies
}

// NewAIHandler creates a new AI handler.
func NewAIHandler(deps AIDependencies) *AIHandler {
	return &AIHandler{deps: deps}
}

// aiRequest mirrors the OpenAPI schema for the AI endpoints.
type aiRequest struct {
	PlayerID *int `json:"player_id"`
}

// HandleCrypticClue handles POST /api/cryptic-clue requests.
func (h *AIHandler) HandleCrypticClue(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "api.cryptic_clue", "clue", h.deps.CrypticClue)
}

// HandlePlayerBio handles POST /api/player-bio requests.
func (h *AIHandler) HandlePlayerBio(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "api.player_bio", "bio", h.deps.PlayerBio)
}

// handle runs the shared decode/generate/respond path. AI failures never
// break the core game flow; they surface as 503/429 and the frontend
// simply hides the feature.
func (h *AIHandler) handle(w http.ResponseWriter, r *http.Request, op, field string,
	gen func(context.Context, int) (string, error)) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req aiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.PlayerID == nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	text, err := gen(r.Context(), *req.PlayerID)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrDisabled):
			writeError(w, http.StatusServiceUnavailable, "ai_disabled", ai.ErrDisabled)
		case errors.Is(err, ai.ErrThrottled):
			writeError(w, http.StatusTooManyRequests, "throttled", ai.ErrThrottled)
		case errors.Is(err, repository.ErrUnknownPlayer):
			writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{field: text})
}
