package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"portfolio-contact/handler"
	"portfolio-contact/internal/bootstrap"
	"portfolio-contact/internal/config"
	"portfolio-contact/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))

	// ---- Store ----
	// The store lives for the whole execution environment; Lambda gives no
	// shutdown hook, so connections are reclaimed with the process.
	store, err := bootstrap.OpenStore(ctx, cfg, bootstrap.DefaultAWSConfig, logger)
	if err != nil {
		slog.Error("failed to open store", "err", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}

	// ---- Handler ----
	contactService, err := usecase.NewContactService(store, logger)
	if err != nil {
		slog.Error("failed to create contact service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(contactService, logger)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
