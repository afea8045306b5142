package main

import (
	"context"
	"errors"
	"os"

	"tally/internal/backend"
	"tally/internal/cli"
	"tally/internal/export/google"
	"tally/internal/log"
	"tally/internal/worker"
)

func main() {
	cfg, logger := cli.Bootstrap(log.ComponentWorker)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the export worker")
		os.Exit(1)
	}

	result, err := backend.Open(cfg, logger.WithComponent(log.ComponentBackend))
	if err != nil {
		logger.Error("open backend", "error", err)
		os.Exit(1)
	}
	defer result.Cleanup()

	// backend.Open degrades to no AMQP when the broker is down; the
	// worker cannot run without it.
	consumer := result.Publisher
	if consumer == nil {
		logger.Error("amqp connection required")
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext()
	defer stop()

	sheet, err := google.NewClient(ctx, google.Config{
		SpreadsheetID: cfg.GoogleSpreadsheetID,
		SheetName:     cfg.GoogleSheetName,
	})
	if err != nil {
		logger.Error("initialize sheets client", "error", err)
		os.Exit(1)
	}
	if err := sheet.EnsureHeader(ctx); err != nil {
		logger.Error("prepare audit sheet", "error", err)
		os.Exit(1)
	}

	w := worker.NewExportWorker(result.Store, sheet, logger)

	logger.Info("export worker started",
		"queue", cfg.AMQPQueue,
		"spreadsheet_id", cfg.GoogleSpreadsheetID,
		"sheet", cfg.GoogleSheetName)

	if err := w.Run(ctx, consumer); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
