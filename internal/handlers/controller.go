package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/rquansah/financialdashboard/internal/alphavantage"
	"github.com/rquansah/financialdashboard/internal/report"
)

// IncomeStatementFetcher is the provider call the controller renders from.
type IncomeStatementFetcher interface {
	FetchIncomeStatement(ctx context.Context, symbol string) ([]alphavantage.AnnualReport, error)
}

type Controller struct {
	fetcher IncomeStatementFetcher
	symbols []string
	logger  *slog.Logger
}

func NewController(fetcher IncomeStatementFetcher, symbols []string, logger *slog.Logger) *Controller {
	return &Controller{
		fetcher: fetcher,
		symbols: symbols,
		logger:  logger,
	}
}

var (
	errUnknownSymbol    = errors.New("symbol is not in the configured list")
	errInvalidYearBound = errors.New("year bound must be a number")
)

// loadTable fetches the symbol's statements fresh and normalizes them.
// Nothing is cached between requests.
func (controller *Controller) loadTable(r *http.Request) (string, report.Table, error) {
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	if symbol == "" && len(controller.symbols) > 0 {
		symbol = controller.symbols[0]
	}
	if !controller.knownSymbol(symbol) {
		return symbol, nil, fmt.Errorf("%q: %w", symbol, errUnknownSymbol)
	}

	reports, err := controller.fetcher.FetchIncomeStatement(r.Context(), symbol)
	if err != nil {
		return symbol, nil, err
	}

	table, err := report.Normalize(reports)
	if err != nil {
		return symbol, nil, err
	}

	from, err := yearBound(r, "from")
	if err != nil {
		return symbol, nil, err
	}
	to, err := yearBound(r, "to")
	if err != nil {
		return symbol, nil, err
	}
	return symbol, table.FilterYears(from, to), nil
}

// yearBound reads an optional year query parameter; empty means open bound.
func yearBound(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, raw, errInvalidYearBound)
	}
	return year, nil
}

func (controller *Controller) knownSymbol(symbol string) bool {
	for _, s := range controller.symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// errorStatus maps a failed render to its HTTP status.
func errorStatus(err error) int {
	var parseErr *report.ParseError
	switch {
	case errors.Is(err, errUnknownSymbol), errors.Is(err, errInvalidYearBound):
		return http.StatusBadRequest
	case errors.Is(err, alphavantage.ErrMissingAPIKey):
		return http.StatusInternalServerError
	case errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

// renderError puts an error message where the chart would have been. Every
// failure is terminal for the render; there is no retry and no partial chart.
// Symbol and error text come from the request, so both are escaped.
func (controller *Controller) renderError(w http.ResponseWriter, symbol string, err error) {
	controller.logger.Error("Failed to build report", "symbol", symbol, "error", err)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(errorStatus(err))
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Financial Dashboard</title></head>
<body style="font-family: Arial, sans-serif; padding: 40px;">
	<h2>Unable to load data for %s</h2>
	<p>%s</p>
</body>
</html>`, html.EscapeString(symbol), html.EscapeString(err.Error()))
}
