package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rquansah/financialdashboard/internal/alphavantage"
)

// ParseError reports a raw report field that could not be converted.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("report: parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Row is one fiscal year of normalized income-statement data. Revenue is
// mandatory; the other figures are nil when the provider reported "None"
// or a value that does not parse.
type Row struct {
	FiscalYear                int      `json:"fiscal_year"`
	RevenueBillionUSD         float64  `json:"revenue_billion_usd"`
	NetIncomeBillionUSD       *float64 `json:"net_income_billion_usd"`
	GrossProfitBillionUSD     *float64 `json:"gross_profit_billion_usd"`
	CostOfRevenueBillionUSD   *float64 `json:"cost_of_revenue_billion_usd"`
	OperatingIncomeBillionUSD *float64 `json:"operating_income_billion_usd"`
	EBITDABillionUSD          *float64 `json:"ebitda_billion_usd"`
	RnDBillionUSD             *float64 `json:"rnd_billion_usd"`
	SGABillionUSD             *float64 `json:"sga_billion_usd"`
	InterestExpenseBillionUSD *float64 `json:"interest_expense_billion_usd"`
	ProfitMarginPct           *float64 `json:"profit_margin_pct"`
}

type Table []Row

// Normalize converts the provider's raw annual reports into a Table sorted
// ascending by fiscal year. fiscalDateEnding and totalRevenue must parse;
// everything else degrades to nil. When the provider repeats a fiscal year
// (restated figures), the first record wins — the provider lists the most
// recent filing first.
func Normalize(reports []alphavantage.AnnualReport) (Table, error) {
	rows := make(Table, 0, len(reports))
	seen := make(map[int]bool)

	for _, raw := range reports {
		year, err := fiscalYear(raw.FiscalDateEnding)
		if err != nil {
			return nil, err
		}
		if seen[year] {
			continue
		}
		seen[year] = true

		revenue, err := strconv.ParseFloat(strings.TrimSpace(raw.TotalRevenue), 64)
		if err != nil {
			return nil, &ParseError{Field: "totalRevenue", Value: raw.TotalRevenue, Err: err}
		}

		row := Row{
			FiscalYear:                year,
			RevenueBillionUSD:         revenue / 1e9,
			NetIncomeBillionUSD:       billions(raw.NetIncome),
			GrossProfitBillionUSD:     billions(raw.GrossProfit),
			CostOfRevenueBillionUSD:   billions(raw.CostOfRevenue),
			OperatingIncomeBillionUSD: billions(raw.OperatingIncome),
			EBITDABillionUSD:          billions(raw.EBITDA),
			RnDBillionUSD:             billions(raw.ResearchAndDevelopment),
			SGABillionUSD:             billions(raw.SellingGeneralAndAdministrative),
			InterestExpenseBillionUSD: billions(raw.InterestExpense),
		}

		if row.NetIncomeBillionUSD != nil && revenue != 0 {
			margin := *row.NetIncomeBillionUSD / row.RevenueBillionUSD * 100
			row.ProfitMarginPct = &margin
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].FiscalYear < rows[j].FiscalYear
	})

	return rows, nil
}

// FilterYears keeps rows with from <= FiscalYear <= to. A zero bound is open.
func (t Table) FilterYears(from, to int) Table {
	filtered := make(Table, 0, len(t))
	for _, row := range t {
		if from != 0 && row.FiscalYear < from {
			continue
		}
		if to != 0 && row.FiscalYear > to {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// YearRange returns the lowest and highest fiscal years in the table.
func (t Table) YearRange() (int, int) {
	if len(t) == 0 {
		return 0, 0
	}
	return t[0].FiscalYear, t[len(t)-1].FiscalYear
}

func fiscalYear(date string) (int, error) {
	if len(date) < 4 {
		return 0, &ParseError{Field: "fiscalDateEnding", Value: date, Err: fmt.Errorf("date too short")}
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, &ParseError{Field: "fiscalDateEnding", Value: date, Err: err}
	}
	return year, nil
}

func billions(valueStr string) *float64 {
	valueStr = strings.TrimSpace(valueStr)
	if valueStr == "" || valueStr == "None" || valueStr == "-" {
		return nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return nil
	}
	value /= 1e9
	return &value
}
