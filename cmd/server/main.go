package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/urfave/cli/v2"

	"github.com/damon-houk/plaid-stripe-link/internal/application/service"
	"github.com/damon-houk/plaid-stripe-link/internal/config"
	"github.com/damon-houk/plaid-stripe-link/internal/infrastructure/api"
	"github.com/damon-houk/plaid-stripe-link/internal/infrastructure/db"
	"github.com/damon-houk/plaid-stripe-link/internal/infrastructure/handler"
	"github.com/damon-houk/plaid-stripe-link/internal/infrastructure/logger"
	"github.com/damon-houk/plaid-stripe-link/internal/infrastructure/middleware"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "plaid-stripe-link",
		Usage:   "Exchange Plaid Link public tokens for Stripe bank account tokens",
		Version: version,
		Flags:   config.Flags(),
		Action: func(c *cli.Context) error {
			return run(c.Context, config.FromContext(c))
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	log := logger.NewJSONLogger(os.Stdout, level)
	defer log.Sync()
	logger.SetDefaultLogger(log)

	log.Info("Starting Plaid Stripe link service", map[string]interface{}{
		"version":     version,
		"environment": cfg.Environment,
		"data_dir":    cfg.DataDir,
	})

	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	badgerDB, err := db.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := badgerDB.Close(); err != nil {
			log.Error("Error closing BadgerDB", map[string]interface{}{"error": err.Error()})
		}
	}()

	plaidClient, err := api.NewClient(cfg.ClientID, cfg.Secret, cfg.Environment, api.WithLogger(log))
	if err != nil {
		return err
	}

	linkService := service.NewLinkService(plaidClient, db.NewBadgerExchangeRecordRepository(badgerDB), log)
	linkHandler := handler.NewLinkHandler(linkService, log)

	router := mux.NewRouter()
	linkHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           middleware.Chain(router, middleware.RequestID, middleware.Logging(log), middleware.Recover(log)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", map[string]interface{}{"addr": cfg.ListenAddr})
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
