package render

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"moneyboard/internal/core"
)

// DailyChart renders the income/expense series over the queried range
// as a PNG. It returns (nil, nil) when there is nothing to draw; the
// caller shows a placeholder instead of a broken chart.
func DailyChart(daily map[string]core.DailyFlow, width, height int) ([]byte, error) {
	if len(daily) == 0 {
		return nil, nil
	}

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)

	xValues := make([]time.Time, 0, len(days))
	incomeValues := make([]float64, 0, len(days))
	expenseValues := make([]float64, 0, len(days))
	for _, day := range days {
		date, err := core.ParseDate(day)
		if err != nil {
			continue
		}
		xValues = append(xValues, date.Time)
		incomeValues = append(incomeValues, daily[day].Income.Float64())
		expenseValues = append(expenseValues, daily[day].Expense.Float64())
	}
	if len(xValues) == 0 {
		return nil, nil
	}

	// A continuous series needs two points; pad single-day data with a
	// zero day before it.
	if len(xValues) == 1 {
		xValues = append([]time.Time{xValues[0].AddDate(0, 0, -1)}, xValues...)
		incomeValues = append([]float64{0}, incomeValues...)
		expenseValues = append([]float64{0}, expenseValues...)
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 40, Right: 40, Bottom: 40},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02"),
			Style:          chart.Style{FontSize: 10},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("¥%.0f", v.(float64))
			},
			Style: chart.Style{FontSize: 10},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "支出",
				XValues: xValues,
				YValues: expenseValues,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2},
			},
			chart.TimeSeries{
				Name:    "收入",
				XValues: xValues,
				YValues: incomeValues,
				Style:   chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render daily chart: %w", err)
	}
	return buf.Bytes(), nil
}

// DonutChart renders the category breakdown for the active toggle as a
// PNG donut. Like DailyChart it returns (nil, nil) for empty data.
func DonutChart(view BreakdownView, width, height int) ([]byte, error) {
	if view.Empty || len(view.Entries) == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(view.Entries))
	for _, entry := range view.Entries {
		if entry.Percent <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %s (%.1f%%)", entry.Category, entry.Amount, entry.Percent),
			Value: entry.Percent,
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	donut := chart.DonutChart{
		Width:  width,
		Height: height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := donut.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render donut chart: %w", err)
	}
	return buf.Bytes(), nil
}
