package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/yourusername/reel-extract-go/internal/app"
	"github.com/yourusername/reel-extract-go/internal/domain"
	"github.com/yourusername/reel-extract-go/internal/infrastructure"
	"github.com/yourusername/reel-extract-go/pkg/logger"
)

// cliRunner wires configuration, logging and the download pipeline
type cliRunner struct {
	out io.Writer
}

// CreateTemplate writes the example CSV to the configured template path
func (c *cliRunner) CreateTemplate() error {
	config, err := app.LoadConfig("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := app.CreateTemplate(config.Input.TemplatePath); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Created %s template with metadata fields for web app\n", config.Input.TemplatePath)
	return nil
}

// Process downloads every row of csvPath, or of the configured CSV when
// csvPath is empty, and prints upload instructions if anything succeeded
func (c *cliRunner) Process(ctx context.Context, csvPath string) error {
	config, err := app.LoadConfig("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if csvPath == "" {
		csvPath = config.Input.CSVPath
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	processor := newProcessor(config, log)

	if config.Logging.LogsDir != "" {
		events, err := logger.NewEventLogger(config.Logging.LogsDir, config.Logging.Level)
		if err != nil {
			log.Warn("Event logs disabled", zap.String("logs_dir", config.Logging.LogsDir), zap.Error(err))
		} else {
			defer events.Close()
			processor.SetEventLogger(events)
		}
	}

	if config.History.Enabled {
		repo, err := infrastructure.NewSQLiteRunRepository(config.History.DatabasePath)
		if err != nil {
			log.Warn("Run history disabled", zap.String("database", config.History.DatabasePath), zap.Error(err))
		} else {
			defer repo.Close()
			processor.SetHistory(repo)
		}
	}

	results := processor.ProcessAll(ctx, csvPath, config.Download.OutputDir)

	app.NewReporter(c.out, &config.Uploader, config.Download.OutputDir).Report(results)
	return nil
}

func newProcessor(config *domain.Config, log *zap.Logger) *app.RowProcessor {
	resolver := infrastructure.NewChromeResolver(&config.Browser, log)
	fetcher := infrastructure.NewReelFetcher(resolver, infrastructure.NewVideoStore(), &config.Download, log)

	processor := app.NewRowProcessor(fetcher, log)
	processor.SetNotifier(infrastructure.NewNotificationService(&config.Notification, log))
	return processor
}
