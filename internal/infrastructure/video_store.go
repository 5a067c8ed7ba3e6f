package infrastructure

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yourusername/reel-extract-go/internal/domain"
)

// VideoStore writes videos and their metadata sidecars into an output directory
type VideoStore struct{}

// NewVideoStore creates a new video store
func NewVideoStore() *VideoStore {
	return &VideoStore{}
}

// WriteVideo streams r into outputDir/filename, creating outputDir if needed.
// The data lands in a temp file first so a failed download never leaves a
// truncated video behind.
func (s *VideoStore) WriteVideo(outputDir, filename string, r io.Reader) (string, error) {
	videoPath := filepath.Join(outputDir, filename)
	if err := os.MkdirAll(filepath.Dir(videoPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(videoPath), "."+filepath.Base(filename)+".*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write video: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close video: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to set video permissions: %w", err)
	}
	if err := os.Rename(tmpPath, videoPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move video into place: %w", err)
	}

	return videoPath, nil
}

// WriteMetadata writes metadata as indented JSON to outputDir/<stem>_metadata.json
func (s *VideoStore) WriteMetadata(outputDir, filename string, metadata *domain.Metadata) (string, error) {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	metadataPath := filepath.Join(outputDir, domain.MetadataFilename(filename))
	if err := os.WriteFile(metadataPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}

	return metadataPath, nil
}

// ReadMetadata loads a metadata sidecar
func ReadMetadata(path string) (*domain.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var metadata domain.Metadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata %s: %w", path, err)
	}
	return &metadata, nil
}
