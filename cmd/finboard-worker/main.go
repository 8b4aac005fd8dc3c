package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"finboard/internal/amqp"
	"finboard/internal/config"
	"finboard/internal/core"
	applog "finboard/internal/log"
	"finboard/internal/storage"
)

// finboard-worker tails the invoice event queue and writes an audit line per
// change, resolving the current row from the store. It exists so downstream
// processing (exports, notifications) has a working consumer to start from.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: applog.ComponentAMQP,
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	db, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer db.Close()

	repo := storage.NewRepository(db, nil)

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	logger.Info("Starting finboard worker", "queue", cfg.AMQPQueue)

	handler := func(ev *amqp.InvoiceEvent) error {
		if ev.Action == amqp.ActionDeleted {
			logger.Info("Invoice deleted", "invoice_id", ev.InvoiceID, "at", ev.Timestamp)
			return nil
		}

		inv, err := repo.FetchInvoiceByID(ctx, ev.InvoiceID)
		if errors.Is(err, core.ErrNotFound) {
			// Deleted between publish and consume; nothing to audit.
			logger.Warn("Invoice no longer exists", "invoice_id", ev.InvoiceID, "action", ev.Action)
			return nil
		}
		if err != nil {
			return err
		}

		logger.Info("Invoice changed",
			"invoice_id", ev.InvoiceID,
			"action", ev.Action,
			"customer_id", inv.CustomerID,
			"amount", inv.Amount,
			"status", inv.Status,
			"at", ev.Timestamp)
		return nil
	}

	if err := client.ConsumeInvoiceEvents(ctx, handler); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Consumer stopped", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
