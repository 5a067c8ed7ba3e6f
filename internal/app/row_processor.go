package app

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/reel-extract-go/internal/domain"
	"github.com/yourusername/reel-extract-go/internal/infrastructure"
	"github.com/yourusername/reel-extract-go/pkg/logger"
)

// BatchNotifier is told when a batch finishes
type BatchNotifier interface {
	NotifyBatchCompleted(downloaded, skipped, failed int)
}

// RowProcessor drives the CSV batch: one row at a time, in file order, with
// failures contained at the row boundary.
type RowProcessor struct {
	fetcher  domain.ReelFetcher
	logger   *zap.Logger
	history  domain.RunRepository
	notifier BatchNotifier
	events   *logger.EventLogger
	now      func() time.Time
	open     func(path string) (domain.RowSource, error)
}

// NewRowProcessor creates a new row processor
func NewRowProcessor(fetcher domain.ReelFetcher, logger *zap.Logger) *RowProcessor {
	return &RowProcessor{
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
		open:    openCSV,
	}
}

func openCSV(path string) (domain.RowSource, error) {
	source, err := infrastructure.OpenCSVRowSource(path)
	if err != nil {
		return nil, err
	}
	return source, nil
}

// SetHistory sets the repository row outcomes are recorded in
func (p *RowProcessor) SetHistory(history domain.RunRepository) {
	p.history = history
}

// SetNotifier sets the batch completion notifier
func (p *RowProcessor) SetNotifier(notifier BatchNotifier) {
	p.notifier = notifier
}

// SetEventLogger sets the categorized event logger
func (p *RowProcessor) SetEventLogger(events *logger.EventLogger) {
	p.events = events
}

// ProcessAll downloads every row of csvPath into outputDir and returns the
// successful downloads in CSV order. An unusable CSV is reported and yields
// no results; it is not returned as an error.
func (p *RowProcessor) ProcessAll(ctx context.Context, csvPath, outputDir string) []domain.DownloadResult {
	source, err := p.open(csvPath)
	if err != nil {
		msg := "CSV file not usable"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "CSV file not found"
		}
		p.logger.Error(msg, zap.String("csv", csvPath), zap.Error(err))
		p.logEventError("csv_unusable", zap.String("csv", csvPath), zap.Error(err))
		return nil
	}
	defer source.Close()

	runID := uuid.New().String()
	p.logger.Info("Starting run",
		zap.String("run_id", runID),
		zap.String("csv", csvPath),
		zap.String("output_dir", outputDir))
	p.logEvent("run_started", zap.String("run_id", runID), zap.String("csv", csvPath))

	results := []domain.DownloadResult{}
	var visited, skipped, failed int

	for {
		if ctx.Err() != nil {
			p.logger.Warn("Run interrupted", zap.String("run_id", runID), zap.Int("rows_visited", visited))
			break
		}

		row, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *domain.RowParseError
		if errors.As(err, &parseErr) {
			visited++
			failed++
			p.logger.Error("Could not parse row",
				zap.Int("row", parseErr.Row),
				zap.Error(parseErr.Err))
			p.record(runID, csvPath, domain.RowOutcome{
				Row:    parseErr.Row,
				Status: domain.RowStatusFailed,
				Err:    err,
			})
			continue
		}
		if err != nil {
			p.logger.Error("Failed to read CSV", zap.String("csv", csvPath), zap.Error(err))
			p.logEventError("csv_read_failed", zap.String("run_id", runID), zap.Error(err))
			break
		}

		visited++
		outcome := p.ProcessRow(ctx, row, outputDir)
		p.record(runID, csvPath, outcome)

		switch outcome.Status {
		case domain.RowStatusSuccess:
			results = append(results, *outcome.Result)
		case domain.RowStatusSkipped:
			skipped++
		case domain.RowStatusFailed:
			failed++
		}
	}

	p.logger.Info("Run finished",
		zap.String("run_id", runID),
		zap.Int("rows", visited),
		zap.Int("downloaded", len(results)),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed))
	p.logEvent("run_finished",
		zap.String("run_id", runID),
		zap.Int("rows", visited),
		zap.Int("downloaded", len(results)),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed))

	p.logHistoryStats(runID)

	if p.notifier != nil {
		p.notifier.NotifyBatchCompleted(len(results), skipped, failed)
	}

	return results
}

// ProcessRow handles a single row and reports what happened to it
func (p *RowProcessor) ProcessRow(ctx context.Context, row domain.InputRow, outputDir string) domain.RowOutcome {
	row.URL = strings.TrimSpace(row.URL)
	outcome := domain.RowOutcome{
		Row:      row.Row,
		URL:      row.URL,
		Filename: row.Filename,
	}

	if row.URL == "" {
		p.logger.Warn("No URL found, skipping", zap.Int("row", row.Row))
		outcome.Status = domain.RowStatusSkipped
		return outcome
	}

	p.logger.Info("Processing",
		zap.String("filename", row.Filename),
		zap.Int("row", row.Row),
		zap.String("url", row.URL))

	metadata := domain.NewMetadata(row, p.now())

	path, err := p.fetcher.Fetch(ctx, row.URL, outputDir, row.Filename, metadata)
	if err != nil {
		p.logger.Error("Error downloading",
			zap.String("filename", row.Filename),
			zap.Int("row", row.Row),
			zap.Error(err))
		outcome.Status = domain.RowStatusFailed
		outcome.Err = err
		return outcome
	}

	outcome.Status = domain.RowStatusSuccess
	outcome.Result = &domain.DownloadResult{
		Filename: row.Filename,
		Path:     path,
		Metadata: metadata,
	}
	return outcome
}

// record stores the outcome in history and the event log. Failures here
// never affect the batch.
func (p *RowProcessor) record(runID, csvPath string, outcome domain.RowOutcome) {
	fields := []zap.Field{
		zap.String("run_id", runID),
		zap.Int("row", outcome.Row),
		zap.String("filename", outcome.Filename),
		zap.String("status", string(outcome.Status)),
	}
	if outcome.Err != nil {
		p.logEventError("row_failed", append(fields, zap.Error(outcome.Err))...)
	} else {
		p.logEvent("row_"+string(outcome.Status), fields...)
	}

	if p.history == nil {
		return
	}
	if err := p.history.Create(domain.NewRunRecord(runID, csvPath, outcome)); err != nil {
		p.logger.Warn("Failed to record row in history",
			zap.Int("row", outcome.Row),
			zap.Error(err))
	}
}

// logHistoryStats reports what the history database holds for the run
func (p *RowProcessor) logHistoryStats(runID string) {
	if p.history == nil {
		return
	}
	stats, err := p.history.GetStats(runID)
	if err != nil {
		p.logger.Warn("Failed to read run history", zap.String("run_id", runID), zap.Error(err))
		return
	}
	p.logger.Info("Run history recorded",
		zap.String("run_id", runID),
		zap.Int64("total", stats.Total),
		zap.Int64("downloaded", stats.Downloaded),
		zap.Int64("skipped", stats.Skipped),
		zap.Int64("failed", stats.Failed))
}

func (p *RowProcessor) logEvent(event string, fields ...zap.Field) {
	if p.events != nil {
		p.events.LogRunEvent(event, fields...)
	}
}

func (p *RowProcessor) logEventError(msg string, fields ...zap.Field) {
	if p.events != nil {
		p.events.LogError(msg, fields...)
	}
}
