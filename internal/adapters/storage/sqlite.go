package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
	"github.com/lcalzada-xor/sentinel/internal/core/ports"
)

// SQLiteCatalog implements ports.AlertIndex using GORM and SQLite. It is a
// derived, queryable index for the dashboard; the JSON artifacts written by
// FileAlertRepository remain the source of truth.
type SQLiteCatalog struct {
	db *gorm.DB
}

var _ ports.AlertIndex = (*SQLiteCatalog)(nil)

// AlertModel is the GORM model for indexed alerts.
type AlertModel struct {
	ID          string `gorm:"primaryKey"`
	GeneratedAt time.Time
	Severity    string `gorm:"index"`
	Title       string
	RiskScore   float64
	AnomalyFlag bool
	RelatedIP   string
}

// NewSQLiteCatalog opens (or creates) the catalog database and migrates the
// schema.
func NewSQLiteCatalog(path string) (*SQLiteCatalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open alert catalog: %w", err)
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, fmt.Errorf("instrument alert catalog: %w", err)
	}

	if err := db.AutoMigrate(&AlertModel{}); err != nil {
		return nil, fmt.Errorf("migrate alert catalog: %w", err)
	}

	db.Exec("CREATE INDEX IF NOT EXISTS idx_alerts_generated_at ON alert_models(generated_at)")

	return &SQLiteCatalog{db: db}, nil
}

// Index upserts one alert into the catalog.
func (c *SQLiteCatalog) Index(ctx context.Context, alert domain.AlertRecord) error {
	model := toAlertModel(alert)
	return c.db.WithContext(ctx).Save(&model).Error
}

// Query lists indexed alerts, newest first, optionally filtered by severity.
func (c *SQLiteCatalog) Query(ctx context.Context, filter domain.AlertFilter) ([]domain.AlertSummary, error) {
	q := c.db.WithContext(ctx).Model(&AlertModel{}).Order("generated_at desc")
	if filter.Severity != "" {
		q = q.Where("severity = ?", string(filter.Severity))
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var models []AlertModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	summaries := make([]domain.AlertSummary, 0, len(models))
	for _, m := range models {
		summaries = append(summaries, toAlertSummary(m))
	}
	return summaries, nil
}

// Close releases the underlying database handle.
func (c *SQLiteCatalog) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
