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

// GuessDependencies defines the interface for guess validation.
type GuessDependencies interface {
	CheckGuess(ctx context.Context, playerID int, first, last string, revealed int) (model.GuessResult, error)
}

// GuessHandler handles guess submissions.
type GuessHandler struct {
	deps GuessDependencies
}

// NewGuessHandler creates a new guess handler.
func NewGuessHandler(deps GuessDependencies) *GuessHandler {
	return &GuessHandler{deps: deps}
}

// guessRequest mirrors the OpenAPI schema for POST /api/guess.
type guessRequest struct {
	PlayerID  *int   `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Revealed  int    `json:"revealed"`
}

type guessResponse struct {
	Correct  bool   `json:"correct"`
	Rejected bool   `json:"rejected,omitempty"`
	Message  string `json:"message,omitempty"`
	Stars    int    `json:"stars,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// HandleGuess handles POST /api/guess requests. Malformed guesses (empty
// names) come back as an ordinary rejected guess, not an HTTP fault.
func (h *GuessHandler) HandleGuess(w http.ResponseWriter, r *http.Request) {
	const op = "api.guess"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.PlayerID == nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	result, err := h.deps.CheckGuess(r.Context(), *req.PlayerID, req.FirstName, req.LastName, req.Revealed)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownPlayer) {
			writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	if result.Rejected {
		writeJSON(w, http.StatusOK, guessResponse{
			Rejected: true,
			Message:  "first and last name are required",
		})
		return
	}
	writeJSON(w, http.StatusOK, guessResponse{
		Correct:  result.Correct,
		Stars:    result.Stars,
		FullName: result.FullName,
	})
}
