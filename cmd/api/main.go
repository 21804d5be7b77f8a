package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nomindnick/worktracker-v1/internal/app"
	"github.com/nomindnick/worktracker-v1/internal/config"
	"github.com/nomindnick/worktracker-v1/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "worktracker:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg)
	defer a.Close()
	if err := a.Init(ctx); err != nil {
		return err
	}

	if err := a.Run(ctx); err != nil {
		logger.Error("App: server stopped with error", err)
		return err
	}
	logger.Info("App: server stopped")
	return nil
}
