package domain

import (
	"errors"
	"fmt"
)

// ErrVideoNotFound is returned when the rendered page never shows a video element
var ErrVideoNotFound = errors.New("video not found")

// ConfigError reports an unusable CSV input. It aborts the run but not the process.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("CSV file '%s' not usable: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FetchStage names the step of the fetch pipeline that failed
type FetchStage string

const (
	StageLaunch        FetchStage = "launch"
	StageNavigate      FetchStage = "navigate"
	StageWaitVideo     FetchStage = "wait_video"
	StageDownload      FetchStage = "download"
	StageWriteVideo    FetchStage = "write_video"
	StageWriteMetadata FetchStage = "write_metadata"
)

// FetchError is any failure inside the fetch pipeline. It is contained at the row boundary.
type FetchError struct {
	Stage FetchStage
	URL   string
	Err   error
}

// NewFetchError wraps err with the failing stage
func NewFetchError(stage FetchStage, url string, err error) *FetchError {
	return &FetchError{Stage: stage, URL: url, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// RowParseError is a CSV record that could not be parsed. It fails that row only.
type RowParseError struct {
	Row int
	Err error
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowParseError) Unwrap() error { return e.Err }
