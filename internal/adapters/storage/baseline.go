package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
	"github.com/lcalzada-xor/sentinel/internal/core/ports"
)

// FileBaselineStore persists the baseline history as a single JSON document.
// Writes go through a temp-file-then-rename so a crash can at most leave the
// state of some prior valid cycle, never a partial structure.
type FileBaselineStore struct {
	path string
}

var _ ports.BaselineStore = (*FileBaselineStore)(nil)

// NewFileBaselineStore creates a store backed by the given file path.
func NewFileBaselineStore(path string) *FileBaselineStore {
	return &FileBaselineStore{path: path}
}

// Load reads the stored history. Missing or corrupt state is the cold-start
// state: availability wins over strict consistency here.
func (s *FileBaselineStore) Load() (domain.BaselineHistory, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.BaselineHistory{}, nil
		}
		log.Printf("Warning: baseline state unreadable, starting cold: %v", err)
		return domain.BaselineHistory{}, nil
	}

	var history domain.BaselineHistory
	if err := json.Unmarshal(data, &history); err != nil {
		log.Printf("Warning: baseline state corrupt, starting cold: %v", err)
		return domain.BaselineHistory{}, nil
	}
	if err := history.Validate(); err != nil {
		log.Printf("Warning: baseline state inconsistent, starting cold: %v", err)
		return domain.BaselineHistory{}, nil
	}
	return history, nil
}

// Save durably writes the full history, overwriting the previous state.
func (s *FileBaselineStore) Save(history domain.BaselineHistory) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create baseline directory: %w", err)
	}

	if history.Vectors == nil {
		history.Vectors = [][]float64{}
	}
	if history.FeatureNames == nil {
		history.FeatureNames = []string{}
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("encode baseline state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write baseline state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace baseline state: %w", err)
	}
	return nil
}
