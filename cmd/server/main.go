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

	"golang.org/x/sync/errgroup"

	"vendorscreen/internal/app"
	jwttoken "vendorscreen/internal/jwt_token"
	"vendorscreen/internal/platform/config"
	"vendorscreen/internal/platform/httpserver"
	"vendorscreen/internal/platform/logger"
	"vendorscreen/internal/platform/metrics"
	screeninghandler "vendorscreen/internal/screening/handler"
	httptransport "vendorscreen/internal/transport/http"
	vendorhandler "vendorscreen/internal/vendors/handler"
)

const shutdownTimeout = 10 * time.Second

// main wires the stack from the environment, serves HTTP and drains the
// audit outbox until SIGINT or SIGTERM.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel, cfg.Server.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stack, err := app.New(ctx, cfg, log, app.WithMetrics(), app.WithMigrations())
	if err != nil {
		return err
	}
	defer func() {
		if err := stack.Close(); err != nil {
			log.Warn("failed to close connections", "error", err)
		}
	}()

	httpMetrics := metrics.New()
	opts := httptransport.Options{
		Logger:  log,
		Metrics: httpMetrics,
		Checks:  map[string]httptransport.HealthCheck{},
		// Handlers give up before the server write deadline does.
		Timeout: httpserver.WriteTimeout(cfg.Evidence.NTS.Timeout) - 5*time.Second,
	}
	for name, check := range stack.Checks() {
		opts.Checks[name] = check
	}
	if cfg.Server.JWTSigningKey != "" {
		opts.Validator = jwttoken.NewJWTService(cfg.Server.JWTSigningKey)
	} else {
		log.Warn("JWT_SIGNING_KEY not set, trusting the X-Actor header")
	}

	router := httptransport.NewRouter(opts,
		vendorhandler.New(stack.Vendors, log, httpMetrics),
		screeninghandler.New(stack.Screening, log),
	)
	srv := httpserver.New(cfg.Server.Addr, router, cfg.Evidence.NTS.Timeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting vendorscreen", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if stack.Worker != nil {
		g.Go(func() error {
			if err := stack.Worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
