package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/rquansah/financialdashboard/internal/report"
)

// Metrics mirrors the dashboard's chart set; the order drives the index page.
var Metrics = []string{
	"revenue",
	"net_income",
	"gross_vs_operating",
	"ebitda_vs_net_income",
	"expenses",
	"revenue_vs_cost",
	"rnd_vs_sga",
	"profit_margin",
}

var chartBuilders = map[string]func(report.Table) components.Charter{
	"revenue":              buildRevenueChart,
	"net_income":           buildNetIncomeChart,
	"gross_vs_operating":   buildGrossVsOperatingChart,
	"ebitda_vs_net_income": buildEBITDAVsNetIncomeChart,
	"expenses":             buildExpensesChart,
	"revenue_vs_cost":      buildRevenueVsCostChart,
	"rnd_vs_sga":           buildRnDVsSGAChart,
	"profit_margin":        buildProfitMarginChart,
}

func (controller *Controller) ChartHandler(w http.ResponseWriter, r *http.Request) {
	metric := chi.URLParam(r, "metric")
	builder, ok := chartBuilders[metric]
	if !ok {
		http.NotFound(w, r)
		return
	}

	symbol, table, err := controller.loadTable(r)
	if err != nil {
		controller.renderError(w, symbol, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            margin: 0;
            padding: 20px;
            background-color: #ffffff;
            font-family: Arial, sans-serif;
        }
        .chart-container {
            background-color: #ffffff;
            border-radius: 8px;
            padding: 20px;
        }
    </style>
</head>
<body>
    <div class="chart-container">`)

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s %s - Financial Dashboard", symbol, FormatMetricName(metric))

	if len(table) > 0 {
		page.AddCharts(builder(table))
	} else {
		fmt.Fprintf(w, `<p>No annual reports in the selected year range.</p>`)
	}

	page.Render(w)

	fmt.Fprintf(w, `</div>`)
	renderDataTable(w, table)
	fmt.Fprintf(w, `</body></html>`)
}

func renderDataTable(w http.ResponseWriter, table report.Table) {
	fmt.Fprintf(w, `
	<style>
		.data-table {
			width: 100%%;
			border-collapse: collapse;
			margin-top: 30px;
			font-family: Arial, sans-serif;
			font-size: 14px;
		}
		.data-table th {
			background-color: #f0f0f0;
			padding: 12px;
			text-align: center;
			border: 1px solid #ccc;
			font-weight: 600;
		}
		.data-table td {
			padding: 10px;
			text-align: right;
			border: 1px solid #ccc;
		}
		.data-table .no-data {
			color: #999;
			font-style: italic;
			text-align: center;
		}
	</style>
	<table class="data-table">
		<thead>
			<tr>
				<th>Fiscal Year</th>
				<th>Revenue ($B)</th>
				<th>Net Income ($B)</th>
				<th>Gross Profit ($B)</th>
				<th>Profit Margin (%%)</th>
			</tr>
		</thead>
		<tbody>`)

	for _, row := range table {
		fmt.Fprintf(w, `<tr><td>%d</td><td>%.3f</td>`, row.FiscalYear, row.RevenueBillionUSD)
		for _, val := range []*float64{row.NetIncomeBillionUSD, row.GrossProfitBillionUSD, row.ProfitMarginPct} {
			if val != nil {
				fmt.Fprintf(w, `<td>%.3f</td>`, *val)
			} else {
				fmt.Fprintf(w, `<td class="no-data">—</td>`)
			}
		}
		fmt.Fprintf(w, `</tr>`)
	}

	fmt.Fprintf(w, `</tbody></table>`)
}

func buildRevenueChart(table report.Table) components.Charter {
	bar := charts.NewBar()
	bar.SetGlobalOptions(chartOptions("Total Revenue by Fiscal Year", "Revenue (Billion USD)")...)
	bar.SetXAxis(fiscalYears(table))
	bar.AddSeries("Total Revenue", barPoints(table, func(row report.Row) *float64 {
		return &row.RevenueBillionUSD
	}))
	return bar
}

func buildNetIncomeChart(table report.Table) components.Charter {
	line := charts.NewLine()
	line.SetGlobalOptions(chartOptions("Net Income by Fiscal Year", "Net Income (Billion USD)")...)
	line.SetXAxis(fiscalYears(table))
	addLineSeries(line, "Net Income", table, func(row report.Row) *float64 {
		return row.NetIncomeBillionUSD
	})
	return line
}

func buildGrossVsOperatingChart(table report.Table) components.Charter {
	line := charts.NewLine()
	line.SetGlobalOptions(chartOptions("Gross Profit vs Operating Income", "Amount (Billion USD)")...)
	line.SetXAxis(fiscalYears(table))
	addLineSeries(line, "Gross Profit", table, func(row report.Row) *float64 {
		return row.GrossProfitBillionUSD
	})
	addLineSeries(line, "Operating Income", table, func(row report.Row) *float64 {
		return row.OperatingIncomeBillionUSD
	})
	return line
}

func buildEBITDAVsNetIncomeChart(table report.Table) components.Charter {
	bar := charts.NewBar()
	bar.SetGlobalOptions(chartOptions("EBITDA vs Net Income", "Amount (Billion USD)")...)
	bar.SetXAxis(fiscalYears(table))
	bar.AddSeries("EBITDA", barPoints(table, func(row report.Row) *float64 {
		return row.EBITDABillionUSD
	}))
	bar.AddSeries("Net Income", barPoints(table, func(row report.Row) *float64 {
		return row.NetIncomeBillionUSD
	}))
	return bar
}

func buildExpensesChart(table report.Table) components.Charter {
	bar := charts.NewBar()
	bar.SetGlobalOptions(chartOptions("Major Expense Categories", "Amount (Billion USD)")...)
	bar.SetXAxis(fiscalYears(table))

	series := []struct {
		name  string
		value func(report.Row) *float64
	}{
		{"SG&A", func(row report.Row) *float64 { return row.SGABillionUSD }},
		{"R&D", func(row report.Row) *float64 { return row.RnDBillionUSD }},
		{"Interest Exp", func(row report.Row) *float64 { return row.InterestExpenseBillionUSD }},
	}
	for _, s := range series {
		bar.AddSeries(s.name, barPoints(table, s.value),
			charts.WithBarChartOpts(opts.BarChart{
				Stack: "expenses",
			}),
		)
	}
	return bar
}

func buildRevenueVsCostChart(table report.Table) components.Charter {
	line := charts.NewLine()
	line.SetGlobalOptions(chartOptions("Revenue vs Cost of Revenue", "Amount (Billion USD)")...)
	line.SetXAxis(fiscalYears(table))
	addAreaSeries(line, "Total Revenue", "#1f77b480", table, func(row report.Row) *float64 {
		return &row.RevenueBillionUSD
	})
	addAreaSeries(line, "Cost of Revenue", "#d6272880", table, func(row report.Row) *float64 {
		return row.CostOfRevenueBillionUSD
	})
	return line
}

func buildRnDVsSGAChart(table report.Table) components.Charter {
	line := charts.NewLine()
	line.SetGlobalOptions(chartOptions("R&D vs SG&A Expenses", "Amount (Billion USD)")...)
	line.SetXAxis(fiscalYears(table))
	addLineSeries(line, "R&D", table, func(row report.Row) *float64 {
		return row.RnDBillionUSD
	})
	addLineSeries(line, "SG&A", table, func(row report.Row) *float64 {
		return row.SGABillionUSD
	})
	return line
}

func buildProfitMarginChart(table report.Table) components.Charter {
	line := charts.NewLine()
	line.SetGlobalOptions(chartOptions("Net Profit Margin (%) by Year", "Profit Margin (%)")...)
	line.SetXAxis(fiscalYears(table))
	addLineSeries(line, "Profit Margin", table, func(row report.Row) *float64 {
		return row.ProfitMarginPct
	})
	return line
}

func chartOptions(title, yAxisName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{
			Title: title,
			Left:  "center",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeInfographic,
			Width:  "1200px",
			Height: "600px",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Bottom: "0",
			Orient: "horizontal",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "shadow",
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:         "Fiscal Year",
			NameLocation: "center",
			NameGap:      30,
			Type:         "category",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         yAxisName,
			NameLocation: "center",
			NameGap:      50,
			Type:         "value",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
				LineStyle: &opts.LineStyle{
					Type: "dashed",
				},
			},
		}),
	}
}

func fiscalYears(table report.Table) []string {
	years := make([]string, len(table))
	for i, row := range table {
		years[i] = strconv.Itoa(row.FiscalYear)
	}
	return years
}

func barPoints(table report.Table, value func(report.Row) *float64) []opts.BarData {
	points := make([]opts.BarData, len(table))
	for i, row := range table {
		if val := value(row); val != nil {
			points[i] = opts.BarData{Value: *val}
		} else {
			points[i] = opts.BarData{Value: nil}
		}
	}
	return points
}

func linePoints(table report.Table, value func(report.Row) *float64) []opts.LineData {
	points := make([]opts.LineData, len(table))
	for i, row := range table {
		if val := value(row); val != nil {
			points[i] = opts.LineData{
				Value:      *val,
				Symbol:     "circle",
				SymbolSize: 8,
			}
		} else {
			points[i] = opts.LineData{
				Value:  nil,
				Symbol: "none",
			}
		}
	}
	return points
}

func addLineSeries(line *charts.Line, name string, table report.Table, value func(report.Row) *float64) {
	line.AddSeries(name, linePoints(table, value),
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:       opts.Bool(true),
			ShowSymbol:   opts.Bool(true),
			Symbol:       "circle",
			SymbolSize:   8,
			ConnectNulls: opts.Bool(true),
		}),
	)
}

func addAreaSeries(line *charts.Line, name, fillColor string, table report.Table, value func(report.Row) *float64) {
	line.AddSeries(name, linePoints(table, value),
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:       opts.Bool(true),
			ShowSymbol:   opts.Bool(false),
			ConnectNulls: opts.Bool(true),
		}),
		charts.WithAreaStyleOpts(opts.AreaStyle{
			Color: fillColor,
		}),
	)
}

func FormatMetricName(metric string) string {
	switch metric {
	case "revenue":
		return "Total Revenue"
	case "net_income":
		return "Net Income"
	case "gross_vs_operating":
		return "Gross Profit vs Operating Income"
	case "ebitda_vs_net_income":
		return "EBITDA vs Net Income"
	case "expenses":
		return "Expense Breakdown"
	case "revenue_vs_cost":
		return "Revenue vs Cost of Revenue"
	case "rnd_vs_sga":
		return "R&D vs SG&A"
	case "profit_margin":
		return "Profit Margin (%)"
	default:
		return metric
	}
}
