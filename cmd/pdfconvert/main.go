// Command pdfconvert runs the PDF conversion service: an HTTP API in
// front of a worker pipeline that converts PDF documents to office formats
// and performs pdfcpu-backed document operations.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docforge/pdfconvert/internal/api"
	"github.com/docforge/pdfconvert/internal/config"
	"github.com/docforge/pdfconvert/internal/convert"
	"github.com/docforge/pdfconvert/internal/pdfops"
	"github.com/docforge/pdfconvert/internal/pipeline"
	"github.com/docforge/pdfconvert/internal/storage"
	"github.com/docforge/pdfconvert/internal/taskstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pdfconvert: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := newLogger(cfg)

	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	tasks, err := taskstore.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer tasks.Close()

	converter := convert.NewService(log)
	ops := pdfops.NewService(log)
	worker := pipeline.NewWorker(converter, ops, store, tasks, log)
	orch := pipeline.NewOrchestrator(worker, cfg.Workers, cfg.QueueSize, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	orch.Start(ctx)

	srv := api.NewServer(orch, tasks, store, log, cfg)
	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", cfg.Address(), "workers", cfg.Workers)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	orch.Stop()

	log.Info("server stopped")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
