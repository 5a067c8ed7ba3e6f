package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunRecord is the persisted outcome of one CSV row
type RunRecord struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	RunID        string    `json:"run_id" gorm:"not null;index"`
	CSVPath      string    `json:"csv_path"`
	CSVRow       int       `json:"csv_row"`
	URL          string    `json:"url"`
	Filename     string    `json:"filename"`
	Status       RowStatus `json:"status" gorm:"not null;index"`
	ErrorMessage string    `json:"error_message,omitempty"`
	FilePath     string    `json:"file_path,omitempty"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (RunRecord) TableName() string {
	return "run_records"
}

// NewRunRecord creates a history record for an outcome
func NewRunRecord(runID, csvPath string, outcome RowOutcome) *RunRecord {
	record := &RunRecord{
		ID:        uuid.New().String(),
		RunID:     runID,
		CSVPath:   csvPath,
		CSVRow:    outcome.Row,
		URL:       outcome.URL,
		Filename:  outcome.Filename,
		Status:    outcome.Status,
		CreatedAt: time.Now(),
	}
	if outcome.Err != nil {
		record.ErrorMessage = outcome.Err.Error()
	}
	if outcome.Result != nil {
		record.FilePath = outcome.Result.Path
	}
	return record
}

// RunRepository persists row outcomes
type RunRepository interface {
	// Create stores a record
	Create(record *RunRecord) error

	// FindByRun returns the records of a run in CSV order
	FindByRun(runID string) ([]*RunRecord, error)

	// GetStats counts the records of a run by status
	GetStats(runID string) (*RunStats, error)
}

// RunStats summarizes a run
type RunStats struct {
	Total      int64 `json:"total"`
	Downloaded int64 `json:"downloaded"`
	Skipped    int64 `json:"skipped"`
	Failed     int64 `json:"failed"`
}
