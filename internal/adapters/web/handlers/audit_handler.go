package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/lcalzada-xor/sentinel/internal/core/ports"
)

// AuditHandler serves the audit trail.
type AuditHandler struct {
	Service ports.AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{Service: service}
}

// HandleGetLogs returns audit entries, optionally limited to the last
// ?limit= records.
func (h *AuditHandler) HandleGetLogs(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.Service.Entries(r.Context(), limit)
	if err != nil {
		log.Printf("Failed to fetch audit entries: %v", err)
		http.Error(w, "Failed to fetch audit entries", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{"entries": entries})
}
