package handlers

import (
	"net/http"

	"github.com/lcalzada-xor/sentinel/internal/config"
)

// ConfigHandler exposes the runtime configuration, minus secrets.
type ConfigHandler struct {
	Config *config.Config
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{Config: cfg}
}

// HandleGetConfig returns the sanitized configuration.
func (h *ConfigHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"data_dir":       h.Config.DataDir,
		"model":          h.Config.Model,
		"targets":        h.Config.Targets,
		"use_nmap":       h.Config.UseNmap,
		"cycle_interval": h.Config.CycleInterval.String(),
		"auth_enabled":   h.Config.APIKeyHash != "",
	})
}
