package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"contabilidad/internal/amqp"
	"contabilidad/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting contabilidad-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Consuming record events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	if err := amqpClient.ConsumeRecordCreated(ctx, logRecordCreated); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}

// logRecordCreated acknowledges each record-created event by logging it.
// Consumers needing more than an audit trail replace this handler.
func logRecordCreated(msg *amqp.RecordCreatedMessage) error {
	slog.Info("Record created",
		"kind", msg.Kind,
		"id", msg.ID,
		"timestamp", msg.Timestamp)
	return nil
}
