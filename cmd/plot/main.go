package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/rquansah/financialdashboard/internal/application"
	"github.com/rquansah/financialdashboard/internal/config"
	"github.com/rquansah/financialdashboard/internal/visualization"
)

// plot renders an archived metric to a PNG bar chart under charts/.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	metric := flag.String("metric", "revenue", "archived metric to plot (revenue, net_income, gross_profit, operating_income, ebitda)")
	symbolsFlag := flag.String("symbols", "", "comma-separated symbols; defaults to every archived symbol")
	flag.Parse()

	cfg := config.LoadConfig()

	if err := run(cfg, *metric, *symbolsFlag); err != nil {
		logger.Error("Plot failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Chart saved", "metric", *metric)
}

func run(cfg *config.Config, metric, symbolsFlag string) error {
	app, err := application.Init(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	var symbols []string
	if symbolsFlag != "" {
		for _, s := range strings.Split(symbolsFlag, ",") {
			symbols = append(symbols, strings.ToUpper(strings.TrimSpace(s)))
		}
	} else {
		symbols, err = app.Repo.GetAllSymbols()
		if err != nil {
			return fmt.Errorf("failed to list archived symbols: %w", err)
		}
	}

	if len(symbols) == 0 {
		return fmt.Errorf("nothing archived yet, run the archive command first")
	}

	data, err := app.Repo.GetSymbolsMetric(symbols, metric)
	if err != nil {
		return fmt.Errorf("failed to query metric: %w", err)
	}

	return visualization.PlotAnnualMetric(data, metric)
}
