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

	"contabilidad/internal/amqp"
	"contabilidad/internal/config"
	"contabilidad/internal/filestore"
	apphttp "contabilidad/internal/http"
	"contabilidad/internal/services"
	"contabilidad/internal/storage"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	files, err := filestore.New(cfg.UploadDir, cfg.AllowedExtensions)
	if err != nil {
		logger.Error("Failed to initialize file store", "error", err, "dir", cfg.UploadDir)
		os.Exit(1)
	}

	// Event publishing is optional: without an AMQP URL the service runs
	// standalone against the local store.
	var events *amqp.Client
	if cfg.AMQPURL != "" {
		events, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, record events disabled", "error", err)
			events = nil
		} else {
			logger.Info("AMQP event publishing enabled",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	svc := services.NewRecordService(repo, events)
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("Close error", "error", err)
		}
	}()

	srv := apphttp.NewServer(":"+cfg.Port, svc, files, cfg.MaxUploadBytes)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting contabilidad server", "port", cfg.Port, "db", cfg.SQLiteDBPath, "uploads", cfg.UploadDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
