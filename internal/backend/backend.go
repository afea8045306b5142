// Package backend selects and wires the configured ledger store.
package backend

import (
	"fmt"

	"tally/internal/amqp"
	"tally/internal/config"
	"tally/internal/ledger"
	"tally/internal/ledger/memory"
	"tally/internal/log"
	"tally/internal/storage"
)

// Type identifies a storage backend.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

func (t Type) Valid() bool { return t == MemoryBackend || t == SQLiteBackend }

// Types lists all valid backend types.
func Types() []Type { return []Type{MemoryBackend, SQLiteBackend} }

// Result bundles an opened store with its optional event publisher and
// a cleanup that releases both.
type Result struct {
	Store     ledger.Store
	Publisher *amqp.Client
	Cleanup   func() error
}

// Open builds the store named by cfg.DataBackend. The AMQP publisher is
// optional: a broker that is down at startup downgrades to running
// without eventing rather than failing the service.
func Open(cfg *config.Config, logger *log.Logger) (*Result, error) {
	backendType := Type(cfg.DataBackend)
	if !backendType.Valid() {
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}

	var store ledger.Store
	switch backendType {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("opened sqlite store", "db_path", cfg.SQLiteDBPath)
		store = repo
	case MemoryBackend:
		logger.Info("using in-memory store")
		store = memory.New()
	}

	var publisher *amqp.Client
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("amqp unavailable, continuing without events", "error", err)
		} else {
			logger.Info("connected to amqp", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
			publisher = client
		}
	}

	cleanup := func() error {
		var firstErr error
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				firstErr = err
			}
		}
		if err := store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		return firstErr
	}

	return &Result{Store: store, Publisher: publisher, Cleanup: cleanup}, nil
}
