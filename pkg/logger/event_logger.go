package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogCategory represents different log categories
type LogCategory string

const (
	CategoryRun   LogCategory = "run"   // Batch and row lifecycle events (JSON)
	CategoryError LogCategory = "error" // Row failures and application errors (JSON)
)

// EventLogger writes categorized JSON event logs, one file per category and day
type EventLogger struct {
	loggers map[LogCategory]*zap.Logger
	files   []*os.File
	logsDir string
	mu      sync.RWMutex
}

// NewEventLogger creates the run and error event logs under logsDir
func NewEventLogger(logsDir, level string) (*EventLogger, error) {
	if logsDir == "" {
		return nil, fmt.Errorf("logs_dir must be specified")
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	el := &EventLogger{
		loggers: make(map[LogCategory]*zap.Logger),
		logsDir: logsDir,
	}

	levels := map[LogCategory]zapcore.Level{
		CategoryRun:   lvl,
		CategoryError: zapcore.ErrorLevel,
	}
	for category, categoryLevel := range levels {
		if err := el.open(category, categoryLevel); err != nil {
			el.Close()
			return nil, fmt.Errorf("failed to create %s logger: %w", category, err)
		}
	}

	return el, nil
}

func (el *EventLogger) open(category LogCategory, level zapcore.Level) error {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.CallerKey = ""

	file, err := os.OpenFile(el.LogPath(category, time.Now()), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	el.files = append(el.files, file)

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(file), level)
	el.loggers[category] = zap.New(core)
	return nil
}

// LogPath returns the log file of a category for a given day
func (el *EventLogger) LogPath(category LogCategory, date time.Time) string {
	return filepath.Join(el.logsDir, fmt.Sprintf("%s-%s.log", category, date.Format("20060102")))
}

// LogRunEvent logs a batch or row lifecycle event
func (el *EventLogger) LogRunEvent(event string, fields ...zap.Field) {
	el.logger(CategoryRun).Info(event, fields...)
}

// LogError logs a failure to the error log
func (el *EventLogger) LogError(msg string, fields ...zap.Field) {
	el.logger(CategoryError).Error(msg, fields...)
}

func (el *EventLogger) logger(category LogCategory) *zap.Logger {
	el.mu.RLock()
	defer el.mu.RUnlock()
	if l, ok := el.loggers[category]; ok {
		return l
	}
	return zap.NewNop()
}

// Close flushes and closes all log files
func (el *EventLogger) Close() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	var lastErr error
	for _, l := range el.loggers {
		if err := l.Sync(); err != nil {
			lastErr = err
		}
	}
	for _, f := range el.files {
		if err := f.Close(); err != nil {
			lastErr = err
		}
	}
	el.loggers = map[LogCategory]*zap.Logger{}
	el.files = nil
	return lastErr
}
