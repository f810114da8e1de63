package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kirillkom/slidemaker/internal/adapters/cli"
	"github.com/kirillkom/slidemaker/internal/bootstrap"
	"github.com/kirillkom/slidemaker/internal/config"
	"github.com/kirillkom/slidemaker/internal/core/ports"
	"github.com/kirillkom/slidemaker/internal/infrastructure/resilience"
	"github.com/kirillkom/slidemaker/internal/observability/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.NewJSONLoggerTo(os.Stderr, "cli", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	newSynthesizer := func(cfg config.Config) ports.Synthesizer {
		policy := resilience.SynthesisPolicy()
		policy.RetryMaxAttempts = cfg.RetryMaxAttempts
		policy.RetryInitialBackoff = cfg.RetryInitialBackoff
		policy.BreakerEnabled = false
		executor := resilience.NewExecutor(policy, resilience.WithLogger(logger))
		return bootstrap.NewSynthesizer(cfg, executor)
	}

	if err := cli.NewRootCommand(cfg, logger, newSynthesizer).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
