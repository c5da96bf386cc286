package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
	"github.com/lcalzada-xor/sentinel/internal/core/ports"
)

// FileAlertRepository persists alert records as pretty-printed JSON files,
// one per alert, under the alerts directory. These files are the canonical
// artifacts the dashboard consumes.
type FileAlertRepository struct {
	dir string
}

var _ ports.AlertRepository = (*FileAlertRepository)(nil)

// NewFileAlertRepository creates a repository rooted at dir.
func NewFileAlertRepository(dir string) *FileAlertRepository {
	return &FileAlertRepository{dir: dir}
}

// Save writes the alert record. Any I/O failure propagates; an alert is
// never partially persisted and then returned as success.
func (r *FileAlertRepository) Save(alert domain.AlertRecord) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("create alerts directory: %w", err)
	}
	data, err := json.MarshalIndent(alert, "", "  ")
	if err != nil {
		return fmt.Errorf("encode alert %s: %w", alert.ID, err)
	}
	if err := os.WriteFile(filepath.Join(r.dir, alert.ID+".json"), data, 0644); err != nil {
		return fmt.Errorf("write alert %s: %w", alert.ID, err)
	}
	return nil
}

// Get reads a single alert by id.
func (r *FileAlertRepository) Get(id string) (domain.AlertRecord, error) {
	// Reject anything that could escape the alerts directory.
	if id == "" || id != filepath.Base(id) || strings.Contains(id, "..") {
		return domain.AlertRecord{}, fmt.Errorf("invalid alert id %q", id)
	}
	data, err := os.ReadFile(filepath.Join(r.dir, id+".json"))
	if err != nil {
		return domain.AlertRecord{}, fmt.Errorf("read alert %s: %w", id, err)
	}
	var alert domain.AlertRecord
	if err := json.Unmarshal(data, &alert); err != nil {
		return domain.AlertRecord{}, fmt.Errorf("decode alert %s: %w", id, err)
	}
	return alert, nil
}

// List returns all persisted alerts, newest first. Unreadable files are
// skipped so one bad artifact cannot hide the rest.
func (r *FileAlertRepository) List() ([]domain.AlertRecord, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	var alerts []domain.AlertRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			log.Printf("Warning: skipping unreadable alert %s: %v", entry.Name(), err)
			continue
		}
		var alert domain.AlertRecord
		if err := json.Unmarshal(data, &alert); err != nil {
			log.Printf("Warning: skipping malformed alert %s: %v", entry.Name(), err)
			continue
		}
		alerts = append(alerts, alert)
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].GeneratedAt.After(alerts[j].GeneratedAt)
	})
	return alerts, nil
}
