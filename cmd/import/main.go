package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nomindnick/worktracker-v1/internal/app"
	"github.com/nomindnick/worktracker-v1/internal/config"
	"github.com/nomindnick/worktracker-v1/internal/importer"
	"github.com/nomindnick/worktracker-v1/internal/logger"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "worktracker-import:", err)
		os.Exit(1)
	}
}

func run() error {
	file := flag.String("file", "", "YAML fixture to load")
	flag.Parse()
	if *file == "" && flag.NArg() > 0 {
		*file = flag.Arg(0)
	}
	if *file == "" {
		return errors.New("usage: worktracker-import -file projects.yml")
	}

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

	res, err := importer.ImportFile(ctx, a.Service(), *file)
	if err != nil {
		logger.Error("App: import failed", err, zap.String("file", *file), zap.Stringer("imported", res))
		return err
	}
	fmt.Println("imported", res)
	return nil
}
