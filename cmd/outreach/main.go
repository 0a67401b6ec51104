package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"outreach/internal/backend"
	"outreach/internal/cli"
	"outreach/internal/config"
	"outreach/internal/core"
	apphttp "outreach/internal/http"
	applog "outreach/internal/log"
	"outreach/internal/services"
)

func main() {
	cfg, logger := cli.Bootstrap(applog.ComponentApp)

	srv, svc, err := newApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger.Logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if err := svc.Close(); err != nil {
			logger.Error("Failed to close outreach service", "error", err)
		}
	})

	logger.Info("Starting outreach server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}

// newApp builds the record store, the service and the HTTP server from cfg.
func newApp(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*apphttp.Server, *services.OutreachService, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("backend config: %w", err)
	}

	res, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create backend: %w", err)
	}

	svc := services.NewOutreachService(res.Store, res.Publisher, core.Caller{
		Name:   cfg.CallerName,
		Market: cfg.CallerMarket,
	})

	srv := apphttp.NewServer(svc, apphttp.Options{
		Addr:               ":" + cfg.Port,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger,
		Ready:              res.Ping,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	logger.Info("Application wired", "events", res.Publisher != nil)
	return srv, svc, nil
}
