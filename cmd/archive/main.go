package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rquansah/financialdashboard/internal/alphavantage"
	"github.com/rquansah/financialdashboard/internal/config"
	"github.com/rquansah/financialdashboard/internal/database"
	"github.com/rquansah/financialdashboard/internal/report"
)

// archive snapshots the configured symbols' income statements into Postgres
// for offline plotting. The web server never reads these snapshots.
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

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Archive failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := database.NewConnection(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	client := alphavantage.NewClient(cfg.AVBaseURL, cfg.AVToken)
	repo := database.NewRepository(db)

	archived := 0
	for _, symbol := range cfg.Symbols {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		reports, err := client.FetchIncomeStatement(ctx, symbol)
		if err != nil {
			logger.Warn("Failed to fetch income statement",
				"symbol", symbol,
				"error", err)
			continue
		}

		table, err := report.Normalize(reports)
		if err != nil {
			logger.Warn("Failed to normalize income statement",
				"symbol", symbol,
				"error", err)
			continue
		}

		for _, row := range table {
			if err := repo.SaveAnnualRow(symbol, row); err != nil {
				logger.Warn("Failed to save annual row",
					"symbol", symbol,
					"year", row.FiscalYear,
					"error", err)
				continue
			}
			archived++
		}
	}

	logger.Info("Archive completed successfully",
		"rows_archived", archived)

	return nil
}
