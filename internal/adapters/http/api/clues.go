// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/albionarcade/gully/internal/adapters/repository"
	"github.com/albionarcade/gully/internal/domain/model"
)

// CluesDependencies defines the interface for progressive clue reveals.
type CluesDependencies interface {
	NextClue(ctx context.Context, playerID, revealed int) (model.Clue, bool, error)
}

// CluesHandler handles next-clue requests.
type CluesHandler struct {
	deps CluesDependencies
}

// NewCluesHandler creates a new clues handler.
func NewCluesHandler(deps CluesDependencies) *CluesHandler {
	return &CluesHandler{deps: deps}
}

// clueRequest mirrors the OpenAPI schema for POST /api/clues.
// Revealed is how many tiers the client has already seen.
type clueRequest struct {
	PlayerID *int `json:"player_id"`
	Revealed int  `json:"revealed"`
}

func (c clueRequest) validate() error {
	switch {
	case c.PlayerID == nil:
		return errors.New("missing player_id")
	case c.Revealed < 0:
		return errors.New("revealed must be >= 0")
	}
	return nil
}

type nextClueResponse struct {
	Clue *clueResponse `json:"clue,omitempty"`
	Done bool          `json:"done"`
}

// HandleNextClue handles POST /api/clues requests. The caller gets exactly
// one more tier per request; after tier 5 the response signals done.
func (h *CluesHandler) HandleNextClue(w http.ResponseWriter, r *http.Request) {
	const op = "api.next_clue"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req clueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	clue, done, err := h.deps.NextClue(r.Context(), *req.PlayerID, req.Revealed)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownPlayer) {
			writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if done {
		writeJSON(w, http.StatusOK, nextClueResponse{Done: true})
		return
	}
	resp := toClueResponse(clue)
	writeJSON(w, http.StatusOK, nextClueResponse{Clue: &resp})
}
