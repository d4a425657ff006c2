// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// ConfigDependencies defines the interface for client configuration reads.
type ConfigDependencies interface {
	Debug() bool
	PlayerCount() int
	WindowDays() int
}

// ConfigHandler handles client configuration requests.
type ConfigHandler struct {
	deps ConfigDependencies
}

// NewConfigHandler creates a new config handler.
func NewConfigHandler(deps ConfigDependencies) *ConfigHandler {
	return &ConfigHandler{deps: deps}
}

type configResponse struct {
	Debug       bool `json:"debug"`
	PlayerCount int  `json:"player_count"`
	WindowDays  int  `json:"window_days"`
}

// HandleConfig handles GET /api/config requests.
func (h *ConfigHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, configResponse{
		Debug:       h.deps.Debug(),
		PlayerCount: h.deps.PlayerCount(),
		WindowDays:  h.deps.WindowDays(),
	})
}
