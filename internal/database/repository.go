package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rquansah/financialdashboard/internal/report"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// archiveMetrics maps CLI metric names to snapshot columns. The metric name
// is interpolated into SQL, so only values from this map may be queried.
var archiveMetrics = map[string]string{
	"revenue":          "revenue",
	"net_income":       "net_income",
	"gross_profit":     "gross_profit",
	"operating_income": "operating_income",
	"ebitda":           "ebitda",
}

// SaveAnnualRow upserts one normalized fiscal year for a symbol. Values are
// stored in billions of USD, matching what the dashboard renders.
func (r *Repository) SaveAnnualRow(symbol string, row report.Row) error {
	query := `
    INSERT INTO income_statements (symbol, fiscal_year, revenue, net_income, gross_profit, operating_income, ebitda)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    ON CONFLICT (symbol, fiscal_year)
    DO UPDATE SET
        revenue = EXCLUDED.revenue,
        net_income = COALESCE(EXCLUDED.net_income, income_statements.net_income),
        gross_profit = COALESCE(EXCLUDED.gross_profit, income_statements.gross_profit),
        operating_income = COALESCE(EXCLUDED.operating_income, income_statements.operating_income),
        ebitda = COALESCE(EXCLUDED.ebitda, income_statements.ebitda)`

	_, err := r.db.Exec(query,
		symbol,
		row.FiscalYear,
		row.RevenueBillionUSD,
		nullIfMissing(row.NetIncomeBillionUSD),
		nullIfMissing(row.GrossProfitBillionUSD),
		nullIfMissing(row.OperatingIncomeBillionUSD),
		nullIfMissing(row.EBITDABillionUSD),
	)

	return err
}

func nullIfMissing(val *float64) interface{} {
	if val == nil {
		return nil
	}
	return *val
}

type SymbolMetric struct {
	Symbol     string
	FiscalYear int
	Value      float64
}

func (r *Repository) GetSymbolsMetric(symbols []string, metric string) ([]SymbolMetric, error) {
	column, ok := archiveMetrics[metric]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", metric)
	}

	placeholders := make([]string, len(symbols))
	args := make([]interface{}, len(symbols))
	for i, symbol := range symbols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = symbol
	}

	query := fmt.Sprintf(`
		SELECT symbol, fiscal_year, %s as value
		FROM income_statements
		WHERE symbol IN (%s)
		ORDER BY symbol, fiscal_year
	`, column, strings.Join(placeholders, ","))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query metric %s: %w", metric, err)
	}
	defer rows.Close()

	var result []SymbolMetric
	for rows.Next() {
		var item SymbolMetric
		var value sql.NullFloat64

		if err := rows.Scan(&item.Symbol, &item.FiscalYear, &value); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		if value.Valid {
			item.Value = value.Float64
		}

		result = append(result, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func (r *Repository) GetAllSymbols() ([]string, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT symbol
		FROM income_statements
		ORDER BY symbol
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return symbols, nil
}
