package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
)

// ResponsesHandler serves the response action snapshots.
type ResponsesHandler struct {
	Dir string
}

// NewResponsesHandler creates a handler over the responses directory.
func NewResponsesHandler(dir string) *ResponsesHandler {
	return &ResponsesHandler{Dir: dir}
}

// HandleForAlert returns all recorded action snapshots of one alert.
func (h *ResponsesHandler) HandleForAlert(w http.ResponseWriter, r *http.Request) {
	alertID := mux.Vars(r)["alertID"]
	if alertID == "" || alertID != filepath.Base(alertID) || strings.Contains(alertID, "..") {
		http.Error(w, "Invalid alert id", http.StatusBadRequest)
		return
	}

	matches, err := filepath.Glob(filepath.Join(h.Dir, alertID+"_*.json"))
	if err != nil {
		http.Error(w, "Failed to list responses", http.StatusInternalServerError)
		return
	}

	actions := make(map[string]map[string]string)
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var payload map[string]string
		if err := json.Unmarshal(data, &payload); err != nil {
			continue
		}
		name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), alertID+"_"), ".json")
		actions[name] = payload
	}

	writeJSON(w, map[string]interface{}{"alert_id": alertID, "actions": actions})
}
