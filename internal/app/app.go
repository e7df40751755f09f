package app

import (
	"context"
	"log/slog"
	"time"

	"fedwatch/internal/config"
	"fedwatch/internal/infrastructure/fetcher"
	"fedwatch/internal/infrastructure/llm"
	"fedwatch/internal/infrastructure/scheduler"
	"fedwatch/internal/infrastructure/storage"
	"fedwatch/internal/infrastructure/telegram"
	"fedwatch/internal/logging"
	"fedwatch/internal/ports"
	"fedwatch/internal/usecase"
)

// Application wires configs to the workflow and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	workflow *usecase.Workflow
	closeDB  func() error
}

// New builds a runnable application instance from configuration.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var (
		store   ports.ReleaseStore
		closeDB func() error
	)
	if cfg.Database.DSN != "" {
		pg, err := storage.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = pg.Close()
			return nil, err
		}
		store = pg
		closeDB = pg.Close
	} else {
		baseLogger.Warn("no database DSN configured, state will not survive restarts")
		store = storage.NewMemoryStore()
	}

	source := fetcher.NewClient(cfg.Source.BaseURL, nil, cfg.Source.Timeout(),
		logging.Component(baseLogger, "fetcher"))

	var analyzer ports.Analyzer
	if cfg.Claude.APIKey != "" {
		analyzer = llm.NewClaudeClient(cfg.Claude)
	}

	var notifier ports.Notifier
	tg := cfg.Notifications.Telegram
	if tg.BotToken != "" && len(tg.ChatIDs) > 0 {
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatIDs,
			logging.Component(baseLogger, "telegram"))
	}

	workflow := usecase.NewWorkflow(usecase.WorkflowDeps{
		Fetcher:  source,
		Store:    store,
		Analyzer: analyzer,
		Notifier: notifier,
		Logger:   logging.Component(baseLogger, "workflow"),
	})

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		workflow: workflow,
		closeDB:  closeDB,
	}, nil
}

// RunOnce executes a single workflow run. A zero override auto-detects the
// cycle from current source state.
func (a *Application) RunOnce(ctx context.Context, override time.Time) (usecase.Report, error) {
	return a.workflow.Run(ctx, override)
}

// RunDaemon drives recurring runs until the context is cancelled.
func (a *Application) RunDaemon(ctx context.Context) error {
	driver := scheduler.NewDailyScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location())
	runner := usecase.NewScheduler(driver, a.workflow)

	if err := runner.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return runner.Stop(stopCtx)
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.closeDB != nil {
		return a.closeDB()
	}
	return nil
}
