package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/backend"
	"tally/internal/cache"
	"tally/internal/cli"
	"tally/internal/fx"
	apphttp "tally/internal/http"
	"tally/internal/log"
	"tally/internal/middleware/ratelimit"
	"tally/internal/services"
)

func main() {
	cfg, logger := cli.Bootstrap(log.ComponentApp)

	result, err := backend.Open(cfg, logger.WithComponent(log.ComponentBackend))
	if err != nil {
		logger.Error("open backend", "error", err)
		os.Exit(1)
	}
	defer result.Cleanup()

	var publisher services.EventPublisher
	if result.Publisher != nil {
		publisher = result.Publisher
	}
	svc := services.NewLedgerService(result.Store, publisher)

	source := &fx.Frankfurter{
		BaseURL: cfg.FxBaseURL,
		Client:  &http.Client{Timeout: cfg.FxTimeout},
	}
	resolver := fx.NewResolver(source)
	recent := fx.NewRecentCurrencies(cfg.RecentCurrencies)

	cacheManager := cache.NewManager()
	cacheManager.Register(resolver.Cache())
	cacheManager.StartCleanup(5 * time.Minute)
	defer cacheManager.Stop()

	srv := apphttp.NewServer(apphttp.Options{
		Addr:      ":" + cfg.Port,
		Service:   svc,
		Resolver:  resolver,
		Recent:    recent,
		RateLimit: ratelimit.DefaultConfig(),
		Logger:    logger.WithComponent(log.ComponentHTTP),
	})

	ctx, stop := cli.SignalContext()
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
