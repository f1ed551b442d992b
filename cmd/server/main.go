package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"accessexplorer/internal/app"
	favhandler "accessexplorer/internal/favorites/handler"
	"accessexplorer/internal/platform/config"
	"accessexplorer/internal/platform/httpserver"
	"accessexplorer/internal/platform/logger"
	"accessexplorer/internal/platform/metrics"
	"accessexplorer/internal/platform/middleware"
	"accessexplorer/internal/search"
	tlhandler "accessexplorer/internal/timelock/handler"
	httptransport "accessexplorer/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.Environment == config.EnvProduction)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := app.Build(ctx, cfg, log, app.Options{Registerer: reg})
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Close(closeCtx); err != nil {
			log.Warn("close resources", "error", err)
		}
	}()

	go func() {
		if err := a.Worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("analytics worker stopped", "error", err)
		}
	}()
	if err := a.Scheduler.Start(cfg.RefreshSchedule); err != nil {
		return err
	}
	defer a.Scheduler.Stop()

	httpMetrics := metrics.New(reg)
	health := map[string]httptransport.HealthChecker{}
	if a.Redis != nil {
		health["redis"] = a.Redis
	}
	if a.Postgres != nil {
		health["postgres"] = pingFunc(a.Postgres.Ping)
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:      log,
		Metrics:     httpMetrics,
		Gatherer:    reg,
		Chains:      a.Chains.All(),
		CORSOrigins: cfg.CORSOrigins,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, httpMetrics, log),
		Health:      health,
		Handlers: []httptransport.Registrar{
			tlhandler.New(a.Timelock, a.Chains, log),
			search.NewHandler(a.Search, a.Chains, log),
			favhandler.New(a.Favorites, a.Tokens, log),
		},
	})

	srv := httpserver.New(cfg.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting accessexplorer", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Health(ctx context.Context) error { return f(ctx) }
