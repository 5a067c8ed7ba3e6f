package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// InputRow is one data record of the input CSV
type InputRow struct {
	URL         string
	Filename    string
	Title       string
	Description string
	Tags        []string
	Row         int // CSV line number; the header is line 1
}

// Metadata is written next to each video for the upload tool.
// The Extracted* and SourceURL fields are set by the fetcher once page
// metadata has been read, and stay nil otherwise.
type Metadata struct {
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Tags                 []string  `json:"tags"`
	DownloadedAt         time.Time `json:"downloaded_at"`
	SourceCSVRow         int       `json:"source_csv_row"`
	ExtractedTitle       *string   `json:"extracted_title,omitempty"`
	ExtractedDescription *string   `json:"extracted_description,omitempty"`
	SourceURL            *string   `json:"source_url,omitempty"`
}

// NewMetadata builds the metadata record for a row
func NewMetadata(row InputRow, downloadedAt time.Time) *Metadata {
	tags := row.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Metadata{
		Title:        row.Title,
		Description:  row.Description,
		Tags:         tags,
		DownloadedAt: downloadedAt,
		SourceCSVRow: row.Row,
	}
}

// SetExtracted merges page metadata into m
func (m *Metadata) SetExtracted(title, description, sourceURL string) {
	m.ExtractedTitle = &title
	m.ExtractedDescription = &description
	m.SourceURL = &sourceURL
}

// DownloadResult is produced for every successfully processed row
type DownloadResult struct {
	Filename string
	Path     string
	Metadata *Metadata
}

// RowStatus is the outcome of processing a single row
type RowStatus string

const (
	RowStatusSuccess RowStatus = "success"
	RowStatusSkipped RowStatus = "skipped"
	RowStatusFailed  RowStatus = "failed"
)

// RowOutcome is returned by the row processor for every visited row
type RowOutcome struct {
	Row      int
	URL      string
	Filename string
	Status   RowStatus
	Result   *DownloadResult // set when Status is success
	Err      error           // set when Status is failed
}

// Succeeded reports whether the row produced a download
func (o RowOutcome) Succeeded() bool {
	return o.Status == RowStatusSuccess && o.Result != nil
}

// ParseTags splits the raw tags field on commas. Tags are not trimmed.
func ParseTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}

// DefaultFilename returns the generated name for a row without a filename.
// index is the 1-based data row index.
func DefaultFilename(index int) string {
	return fmt.Sprintf("reel_%d.mp4", index)
}

// MetadataFilename returns the sidecar JSON name for a video filename
func MetadataFilename(filename string) string {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_metadata.json"
}
