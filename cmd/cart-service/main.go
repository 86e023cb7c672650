package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lavenshop/cart-service/internal/app"
	"github.com/lavenshop/cart-service/internal/config"
	"github.com/lavenshop/cart-service/pkg/logger"
	"github.com/lavenshop/cart-service/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	l := logger.New("cart-service", cfg.LogLevel)
	slog.SetDefault(l)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracingCfg := tracing.DefaultConfig("cart-service")
	tracingCfg.Enabled = cfg.OTELEnabled
	tracingCfg.OTLPEndpoint = cfg.OTELEndpoint
	tracingCfg.SampleRate = cfg.OTELSampleRate
	tracingCfg.Environment = cfg.Environment
	shutdownTracer, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		l.Error("failed to init tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			l.Error("failed to shut down tracer", slog.String("error", err.Error()))
		}
	}()

	a, err := app.New(ctx, cfg, l)
	if err != nil {
		l.Error("failed to build application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		l.Error("application exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
