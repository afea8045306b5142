// Package cli consolidates the startup steps shared by the binaries.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tally/internal/config"
	"tally/internal/log"
)

// Bootstrap loads the .env file, configures logging, and loads and
// validates configuration. Exits the process on invalid configuration.
func Bootstrap(component string) (*config.Config, *log.Logger) {
	// .env is for local development; errors are fine elsewhere.
	_ = godotenv.Load()

	log.Setup()
	logger := log.New(log.Config{Component: component})

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	return cfg, logger
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
