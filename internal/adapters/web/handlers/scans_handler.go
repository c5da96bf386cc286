package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
)

// ScansHandler serves the scan observation snapshots.
type ScansHandler struct {
	Dir string
}

// NewScansHandler creates a handler over the scans directory.
func NewScansHandler(dir string) *ScansHandler {
	return &ScansHandler{Dir: dir}
}

// HandleList returns persisted observations, newest first. Snapshots that
// fail to parse are skipped so one bad write cannot hide the history.
func (h *ScansHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := os.ReadDir(h.Dir)
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to list scans: %v", err)
		http.Error(w, "Failed to list scans", http.StatusInternalServerError)
		return
	}

	var scans []domain.ScanObservation
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "scan_") || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(h.Dir, entry.Name()))
		if err != nil {
			continue
		}
		var obs domain.ScanObservation
		if err := json.Unmarshal(data, &obs); err != nil {
			continue
		}
		scans = append(scans, obs)
	}

	sort.Slice(scans, func(i, j int) bool {
		return scans[i].Timestamp.After(scans[j].Timestamp)
	})
	if len(scans) > limit {
		scans = scans[:limit]
	}

	writeJSON(w, map[string]interface{}{"scans": scans})
}
