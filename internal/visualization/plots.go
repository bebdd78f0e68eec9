package visualization

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/rquansah/financialdashboard/internal/database"
)

// PlotAnnualMetric renders archived values as a grouped bar chart, one group
// per fiscal year and one bar per symbol, and saves it under charts/.
func PlotAnnualMetric(data []database.SymbolMetric, metric string) error {
	p := plot.New()

	p.Title.Text = fmt.Sprintf("%s by Fiscal Year", metric)
	p.X.Label.Text = "Fiscal Year"
	p.Y.Label.Text = fmt.Sprintf("%s (Billion USD)", metric)

	years, symbols, values := alignByYear(data)

	barWidth := vg.Points(16)
	for i, symbol := range symbols {
		bars, err := plotter.NewBarChart(values[symbol], barWidth)
		if err != nil {
			return err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = barWidth * vg.Length(i-len(symbols)/2)

		p.Add(bars)
		p.Legend.Add(symbol, bars)
	}
	p.Legend.Top = true

	labels := make([]string, len(years))
	for i, year := range years {
		labels[i] = strconv.Itoa(year)
	}
	p.NominalX(labels...)

	outputDir := "charts"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	filename := filepath.Join(outputDir, fmt.Sprintf("%s_%d.png", metric, time.Now().Unix()))
	return p.Save(10*vg.Inch, 6*vg.Inch, filename)
}

// alignByYear produces one value series per symbol, indexed against the
// union of fiscal years; missing years plot as zero-height bars.
func alignByYear(data []database.SymbolMetric) ([]int, []string, map[string]plotter.Values) {
	yearSet := make(map[int]bool)
	bySymbol := make(map[string]map[int]float64)

	for _, item := range data {
		yearSet[item.FiscalYear] = true
		if bySymbol[item.Symbol] == nil {
			bySymbol[item.Symbol] = make(map[int]float64)
		}
		bySymbol[item.Symbol][item.FiscalYear] = item.Value
	}

	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Ints(years)

	symbols := make([]string, 0, len(bySymbol))
	for symbol := range bySymbol {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	values := make(map[string]plotter.Values, len(symbols))
	for _, symbol := range symbols {
		series := make(plotter.Values, len(years))
		for i, year := range years {
			series[i] = bySymbol[symbol][year]
		}
		values[symbol] = series
	}

	return years, symbols, values
}
