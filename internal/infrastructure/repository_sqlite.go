package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/reel-extract-go/internal/domain"
)

// SQLiteRunRepository implements RunRepository using SQLite
type SQLiteRunRepository struct {
	db *gorm.DB
}

// NewSQLiteRunRepository opens (and creates if needed) the history database
func NewSQLiteRunRepository(dbPath string) (*SQLiteRunRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.RunRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteRunRepository{db: db}, nil
}

// Create stores a record
func (r *SQLiteRunRepository) Create(record *domain.RunRecord) error {
	return r.db.Create(record).Error
}

// FindByRun returns the records of a run ordered by CSV row
func (r *SQLiteRunRepository) FindByRun(runID string) ([]*domain.RunRecord, error) {
	var records []*domain.RunRecord
	err := r.db.Where("run_id = ?", runID).
		Order("csv_row ASC").
		Find(&records).Error
	return records, err
}

// GetStats counts the records of a run by status
func (r *SQLiteRunRepository) GetStats(runID string) (*domain.RunStats, error) {
	stats := &domain.RunStats{}

	statusCounts := []struct {
		Status domain.RowStatus
		Count  int64
	}{}

	if err := r.db.Model(&domain.RunRecord{}).
		Select("status, count(*) as count").
		Where("run_id = ?", runID).
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, err
	}

	for _, sc := range statusCounts {
		stats.Total += sc.Count
		switch sc.Status {
		case domain.RowStatusSuccess:
			stats.Downloaded = sc.Count
		case domain.RowStatusSkipped:
			stats.Skipped = sc.Count
		case domain.RowStatusFailed:
			stats.Failed = sc.Count
		}
	}

	return stats, nil
}

// Close closes the database connection
func (r *SQLiteRunRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
