// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/albionarcade/gully/internal/adapters/repository"
	"github.com/albionarcade/gully/internal/domain/model"
)

// DebugDependencies defines the interface for the debug surface.
type DebugDependencies interface {
	Debug() bool
	SetPlayer(ctx context.Context, id int) error
	RecentSelections(ctx context.Context) []model.RecentEntry
	ResetRecents(ctx context.Context) error
}

// DebugHandler handles the non-production debug surface. Every route 404s
// unless the debug flag is set, so the surface is unreachable in the
// default configuration; recent-players alone is additionally readable in
// production with the admin key.
type DebugHandler struct {
	deps     DebugDependencies
	adminKey string
}

// NewDebugHandler creates a new debug handler.
func NewDebugHandler(deps DebugDependencies) *DebugHandler {
	return &DebugHandler{deps: deps}
}

type setPlayerRequest struct {
	PlayerID *int `json:"player_id"`
}

// HandleSetPlayer handles POST /api/debug/set-player requests.
func (h *DebugHandler) HandleSetPlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.debug_set_player"
	if !h.deps.Debug() {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req setPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlayerID == nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if err := h.deps.SetPlayer(r.Context(), *req.PlayerID); err != nil {
		if errors.Is(err, repository.ErrUnknownPlayer) {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleRecentPlayers handles GET /api/debug/recent-players requests.
func (h *DebugHandler) HandleRecentPlayers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if !h.deps.Debug() && !h.adminAllowed(r) {
		http.NotFound(w, r)
		return
	}
	recent := h.deps.RecentSelections(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"recent_players": recent,
		"recent_count":   len(recent),
	})
}

// HandleResetRecent handles POST /api/debug/reset-recent requests.
func (h *DebugHandler) HandleResetRecent(w http.ResponseWriter, r *http.Request) {
	const op = "api.debug_reset_recent"
	if !h.deps.Debug() {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.ResetRecents(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *DebugHandler) adminAllowed(r *http.Request) bool {
	if h.adminKey == "" {
		return false
	}
	provided := r.URL.Query().Get("key")
	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.adminKey)) == 1
}
