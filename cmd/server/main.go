package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rquansah/financialdashboard/internal/alphavantage"
	"github.com/rquansah/financialdashboard/internal/config"
	"github.com/rquansah/financialdashboard/internal/handlers"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.LoadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.AVToken == "" {
		// The server still starts; every render will show the
		// configuration error until the token is provided.
		logger.Warn("AV_TOKEN is not set, chart requests will fail")
	}

	client := alphavantage.NewClient(cfg.AVBaseURL, cfg.AVToken)
	controller := handlers.NewController(client, cfg.Symbols, logger)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", controller.IndexHandler)
	r.Get("/chart/{metric}", controller.ChartHandler)
	r.Get("/api/table", controller.TableHandler)

	logger.Info("Starting server", "port", cfg.Port, "symbols", cfg.Symbols)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	return srv.ListenAndServe()
}
