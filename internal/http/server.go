// Package http exposes the ledger over a JSON API.
package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"tally/internal/fx"
	"tally/internal/log"
	"tally/internal/middleware/ratelimit"
	"tally/internal/middleware/security"
	"tally/internal/middleware/trace"
	"tally/internal/services"
)

// Options configures the API server.
type Options struct {
	Addr      string
	Service   *services.LedgerService
	Resolver  *fx.Resolver
	Recent    *fx.RecentCurrencies
	RateLimit ratelimit.Config
	Logger    *log.Logger
}

// Server serves the ledger API with graceful shutdown.
type Server struct {
	httpServer *http.Server
	svc        *services.LedgerService
	resolver   *fx.Resolver
	recent     *fx.RecentCurrencies
	limiter    *ratelimit.Limiter
	ips        *security.ClientIPResolver
	metrics    *Metrics
	logger     *log.Logger

	shutdownOnce sync.Once
}

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentHTTP})
	}

	s := &Server{
		svc:      opts.Service,
		resolver: opts.Resolver,
		recent:   opts.Recent,
		limiter:  ratelimit.NewLimiter(opts.RateLimit),
		ips:      security.NewClientIPResolver(),
		metrics:  NewMetrics(),
		logger:   logger,
	}

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	s.handle(mux, "GET /healthz", s.handleHealth)
	s.handle(mux, "GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", s.metrics.Handler())

	s.handle(mux, "GET /api/summary", s.handleSummary)

	s.handle(mux, "GET /api/expenses", s.handleListExpenses)
	s.handle(mux, "POST /api/expenses", s.handleCreateExpense)
	s.handle(mux, "POST /api/expenses/preview", s.handlePreviewSplit)
	s.handle(mux, "GET /api/expenses/{id}", s.handleGetExpense)
	s.handle(mux, "PUT /api/expenses/{id}", s.handleUpdateExpense)
	s.handle(mux, "DELETE /api/expenses/{id}", s.handleDeleteExpense)

	s.handle(mux, "GET /api/settlements", s.handleListSettlements)
	s.handle(mux, "POST /api/settlements", s.handleCreateSettlement)
	s.handle(mux, "DELETE /api/settlements/{id}", s.handleDeleteSettlement)

	s.handle(mux, "GET /api/people", s.handleListPeople)
	s.handle(mux, "POST /api/people", s.handleCreatePerson)

	s.handle(mux, "GET /api/fx/rate", s.handleFxRate)
	s.handle(mux, "GET /api/currencies/recent", s.handleRecentCurrencies)
	s.handle(mux, "POST /api/currencies/recent", s.handleTouchCurrency)
	s.handle(mux, "GET /api/categories", s.handleCategories)

	var handler http.Handler = mux
	handler = s.limiter.Middleware(s.ips.ClientIP, nil)(handler)
	handler = trace.Middleware(s.ips.ClientIP)(handler)
	handler = security.Headers(security.DefaultHeadersConfig())(handler)
	return handler
}

// handle registers a handler and instruments it under its route pattern,
// so metrics are labeled by route rather than raw path.
func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, s.metrics.Instrument(pattern, h))
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops background goroutines.
// Safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.logger.Info("server shutting down")
		s.limiter.Stop()
		err = s.httpServer.Shutdown(ctx)
	})
	return err
}
