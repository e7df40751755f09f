package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fedwatch/internal/app"
	"fedwatch/internal/config"
	"fedwatch/internal/domain"
	"fedwatch/internal/logging"
)

func main() {
	dateFlag := flag.String("date", "", "force a specific cycle date (YYYY-MM-DD) instead of auto-detecting")
	daemonFlag := flag.Bool("daemon", false, "keep running and trigger a run every 24h")
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	var override time.Time
	if *dateFlag != "" {
		parsed, err := domain.ParseDate(*dateFlag)
		if err != nil {
			logger.Error("invalid -date value", "value", *dateFlag, "error", err)
			os.Exit(2)
		}
		override = parsed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if *daemonFlag {
		if err := application.RunDaemon(ctx); err != nil {
			logger.Error("daemon stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	report, err := application.RunOnce(ctx, override)
	anchor := ""
	if !report.AnchorDate.IsZero() {
		anchor = domain.FormatDate(report.AnchorDate)
	}
	logger.Info("run finished",
		"status", string(report.Status),
		"message", report.Message,
		"anchor_date", anchor)
	if err != nil {
		os.Exit(1)
	}
}
