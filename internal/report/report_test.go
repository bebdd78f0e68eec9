package report

import (
	"errors"
	"math"
	"testing"

	"github.com/rquansah/financialdashboard/internal/alphavantage"
)

func TestNormalizeSortsByFiscalYear(t *testing.T) {
	reports := []alphavantage.AnnualReport{
		{FiscalDateEnding: "2022-09-24", TotalRevenue: "394328000000"},
		{FiscalDateEnding: "2020-09-26", TotalRevenue: "274515000000"},
		{FiscalDateEnding: "2023-09-30", TotalRevenue: "383285000000"},
		{FiscalDateEnding: "2021-09-25", TotalRevenue: "365817000000"},
	}

	table, err := Normalize(reports)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if len(table) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(table))
	}
	for i := 1; i < len(table); i++ {
		if table[i].FiscalYear <= table[i-1].FiscalYear {
			t.Errorf("rows not strictly ascending: %d before %d",
				table[i-1].FiscalYear, table[i].FiscalYear)
		}
	}
}

func TestNormalizeRevenueConversion(t *testing.T) {
	reports := []alphavantage.AnnualReport{
		{FiscalDateEnding: "2020-09-26", TotalRevenue: "274515000000"},
	}

	table, err := Normalize(reports)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	row := table[0]
	if row.FiscalYear != 2020 {
		t.Errorf("expected fiscal year 2020, got %d", row.FiscalYear)
	}
	if math.Abs(row.RevenueBillionUSD-274.515) > 1e-9 {
		t.Errorf("expected revenue 274.515, got %v", row.RevenueBillionUSD)
	}
}

func TestNormalizeNonNumericRevenue(t *testing.T) {
	reports := []alphavantage.AnnualReport{
		{FiscalDateEnding: "2020-09-26", TotalRevenue: "N/A"},
	}

	_, err := Normalize(reports)
	if err == nil {
		t.Fatal("expected an error for non-numeric revenue")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Field != "totalRevenue" {
		t.Errorf("expected field totalRevenue, got %s", parseErr.Field)
	}
	if parseErr.Value != "N/A" {
		t.Errorf("expected value N/A, got %s", parseErr.Value)
	}
}

func TestNormalizeBadFiscalDate(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{"too short", "20"},
		{"non-numeric year", "20XX-09-26"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := []alphavantage.AnnualReport{
				{FiscalDateEnding: tt.date, TotalRevenue: "274515000000"},
			}

			_, err := Normalize(reports)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if parseErr.Field != "fiscalDateEnding" {
				t.Errorf("expected field fiscalDateEnding, got %s", parseErr.Field)
			}
		})
	}
}

func TestNormalizeDuplicateYearKeepsFirst(t *testing.T) {
	// The provider lists the most recent filing first, so first-wins keeps
	// the latest restatement.
	reports := []alphavantage.AnnualReport{
		{FiscalDateEnding: "2020-09-26", TotalRevenue: "274515000000"},
		{FiscalDateEnding: "2020-09-26", TotalRevenue: "111111000000"},
	}

	table, err := Normalize(reports)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if len(table) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table))
	}
	if math.Abs(table[0].RevenueBillionUSD-274.515) > 1e-9 {
		t.Errorf("expected first record to win, got revenue %v", table[0].RevenueBillionUSD)
	}
}

func TestNormalizeOptionalFieldCoercion(t *testing.T) {
	reports := []alphavantage.AnnualReport{
		{
			FiscalDateEnding: "2020-09-26",
			TotalRevenue:     "274515000000",
			NetIncome:        "None",
			EBITDA:           "not-a-number",
		},
	}

	table, err := Normalize(reports)
	if err != nil {
		t.Fatalf("optional fields must not fail the table: %v", err)
	}

	row := table[0]
	if row.NetIncomeBillionUSD != nil {
		t.Errorf("expected nil net income for \"None\", got %v", *row.NetIncomeBillionUSD)
	}
	if row.EBITDABillionUSD != nil {
		t.Errorf("expected nil EBITDA for unparseable value, got %v", *row.EBITDABillionUSD)
	}
	if row.ProfitMarginPct != nil {
		t.Errorf("expected nil margin without net income, got %v", *row.ProfitMarginPct)
	}
}

func TestNormalizeProfitMargin(t *testing.T) {
	reports := []alphavantage.AnnualReport{
		{
			FiscalDateEnding: "2021-09-25",
			TotalRevenue:     "100000000000",
			NetIncome:        "25000000000",
		},
	}

	table, err := Normalize(reports)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	margin := table[0].ProfitMarginPct
	if margin == nil {
		t.Fatal("expected a profit margin")
	}
	if math.Abs(*margin-25.0) > 1e-9 {
		t.Errorf("expected margin 25.0, got %v", *margin)
	}
}

func TestFilterYears(t *testing.T) {
	table := Table{
		{FiscalYear: 2019},
		{FiscalYear: 2020},
		{FiscalYear: 2021},
		{FiscalYear: 2022},
	}

	tests := []struct {
		name  string
		from  int
		to    int
		years []int
	}{
		{"both bounds", 2020, 2021, []int{2020, 2021}},
		{"open lower", 0, 2020, []int{2019, 2020}},
		{"open upper", 2021, 0, []int{2021, 2022}},
		{"open both", 0, 0, []int{2019, 2020, 2021, 2022}},
		{"empty range", 2023, 2024, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := table.FilterYears(tt.from, tt.to)
			if len(filtered) != len(tt.years) {
				t.Fatalf("expected %d rows, got %d", len(tt.years), len(filtered))
			}
			for i, year := range tt.years {
				if filtered[i].FiscalYear != year {
					t.Errorf("row %d: expected year %d, got %d", i, year, filtered[i].FiscalYear)
				}
			}
		})
	}
}
