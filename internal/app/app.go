package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsRelay/internal/config"
	"NewsRelay/internal/infrastructure/naver"
	"NewsRelay/internal/infrastructure/parser"
	"NewsRelay/internal/infrastructure/reporting"
	"NewsRelay/internal/infrastructure/scheduler"
	"NewsRelay/internal/infrastructure/storage"
	"NewsRelay/internal/infrastructure/telegram"
	"NewsRelay/internal/logging"
	"NewsRelay/internal/ports"
	"NewsRelay/internal/usecase"
)

const shutdownTimeout = 30 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
	sentry    *reporting.SentryReporter
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	sentryReporter, err := reporting.NewSentryReporter(cfg.Sentry)
	if err != nil {
		return nil, err
	}
	var reporter ports.ErrorReporter
	if sentryReporter != nil {
		reporter = sentryReporter
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Search:    naver.NewClient(cfg.Search, baseLogger.With("component", "search")),
		Extractor: parser.NewMetadataExtractor(cfg.Scraper, baseLogger.With("component", "extractor")),
		Store:     storage.NewFileSeenStore(cfg.Store.Path),
		Notifier:  telegram.NewNotifier(cfg.Notifications.Telegram, baseLogger.With("component", "telegram")),
		Reporter:  reporter,
		Logger:    baseLogger.With("component", "pipeline"),
		Query:     cfg.Search.Query,
		Limit:     cfg.Search.Limit,
	})

	sched := usecase.NewScheduler(
		scheduler.NewDelayScheduler(cfg.Scheduler.Interval),
		pipeline,
		reporter,
		baseLogger.With("component", "scheduler"),
	)

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		pipeline:  pipeline,
		scheduler: sched,
		sentry:    sentryReporter,
	}, nil
}

// Run polls until ctx is cancelled. Cycle failures never stop the loop.
func (a *Application) Run(ctx context.Context) error {
	defer a.sentry.Flush(2 * time.Second)

	a.logger.Info("relay started",
		"query", a.cfg.Search.Query,
		"interval", a.cfg.Scheduler.Interval,
		"store", a.cfg.Store.Path,
	)

	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := a.scheduler.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}

	a.logger.Info("relay stopped")
	return nil
}

// RunOnce performs a single polling cycle.
func (a *Application) RunOnce(ctx context.Context) error {
	defer a.sentry.Flush(2 * time.Second)
	return a.scheduler.RunOnce(ctx)
}
