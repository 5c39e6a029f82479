// Package main runs one quarterly report pass and exits. Intended for
// cron or a container job scheduler; the API server exposes the same run
// behind /internal/reports/quarterly.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/creator-ledger/backend/config"
	"github.com/creator-ledger/backend/internal/application/usecase/report"
	"github.com/creator-ledger/backend/internal/infra/db"
	"github.com/creator-ledger/backend/internal/infra/dependency"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	injector, err := dependency.NewInjector(cfg, database.DB())
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := injector.Redis.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Report.RunTimeout)
	defer cancel()

	result, err := injector.ReportUseCase.Execute(ctx, report.RunReportInput{})
	if err != nil {
		slog.Error("Report run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Report run completed",
		"period", result.Period.Label(),
		"processed", result.Processed,
		"sent", result.Sent,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"cancelled", result.Cancelled,
	)

	if result.Cancelled {
		os.Exit(1)
	}
}
