package render

import (
	"bytes"
	"math"
	"testing"

	"moneyboard/internal/core"
)

func TestTable(t *testing.T) {
	empty := Table(nil)
	if !empty.Empty || empty.Placeholder != "暂无记录" {
		t.Fatalf("empty table = %+v", empty)
	}

	view := Table([]core.Record{
		{ID: 7, Type: core.Expense, Amount: core.Money{Cents: 4250}, Category: "餐饮", Date: core.NewDate(2024, 3, 15), Note: "lunch"},
		{ID: 8, Type: core.Income, Amount: core.Money{Cents: 500000}, Category: "工资", Date: core.NewDate(2024, 3, 1)},
	})
	if view.Empty || len(view.Rows) != 2 {
		t.Fatalf("view = %+v", view)
	}

	first := view.Rows[0]
	if first.Type != "支出" || first.Icon != "🍽️" || first.Amount != "¥42.50" ||
		first.Date != "2024-03-15" || first.Note != "lunch" {
		t.Fatalf("row = %+v", first)
	}
	if view.Rows[1].Type != "收入" || view.Rows[1].Note != "-" {
		t.Fatalf("row = %+v", view.Rows[1])
	}
}

func TestMonthCard(t *testing.T) {
	card := MonthCard(core.MonthSummary{
		Year: 2024, Month: 3,
		Income:  core.Money{Cents: 500000},
		Expense: core.Money{Cents: 5450},
		Balance: core.Money{Cents: 494550},
	})
	if card.Title != "2024年3月" {
		t.Fatalf("title = %q", card.Title)
	}
	if card.Balance != "+¥4945.50" || !card.Positive {
		t.Fatalf("card = %+v", card)
	}
	if card.Year != 2024 || card.Month != 3 {
		t.Fatalf("cursor echo = %d-%d", card.Year, card.Month)
	}

	deficit := MonthCard(core.MonthSummary{Year: 2024, Month: 4, Expense: core.Money{Cents: 8000}, Balance: core.Money{Cents: -8000}})
	if deficit.Balance != "-¥80.00" || deficit.Positive {
		t.Fatalf("deficit card = %+v", deficit)
	}
}

func TestYearCardSkipsEmptyMonths(t *testing.T) {
	card := YearCard(core.YearSummary{
		Year:    2024,
		Income:  core.Money{Cents: 500000},
		Expense: core.Money{Cents: 13450},
		Balance: core.Money{Cents: 486550},
		Monthly: map[int]core.MonthFlow{
			3: {Income: core.Money{Cents: 500000}, Expense: core.Money{Cents: 5450}, Balance: core.Money{Cents: 494550}},
			4: {Expense: core.Money{Cents: 8000}, Balance: core.Money{Cents: -8000}},
			5: {},
		},
	})
	if card.Title != "2024年" {
		t.Fatalf("title = %q", card.Title)
	}
	if len(card.Monthly) != 2 {
		t.Fatalf("monthly rows = %+v", card.Monthly)
	}
	if card.Monthly[0].Month != 3 || card.Monthly[1].Month != 4 {
		t.Fatalf("row order = %+v", card.Monthly)
	}
	if card.Monthly[1].Balance != "-¥80.00" {
		t.Fatalf("april balance = %q", card.Monthly[1].Balance)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	totals := []core.CategoryTotal{
		{Category: "餐饮", Type: core.Expense, Total: core.Money{Cents: 7500}},
		{Category: "交通", Type: core.Expense, Total: core.Money{Cents: 2500}},
		{Category: "工资", Type: core.Income, Total: core.Money{Cents: 500000}},
	}

	view := CategoryBreakdown(totals, core.Expense)
	if view.Empty || len(view.Entries) != 2 {
		t.Fatalf("view = %+v", view)
	}
	if view.Entries[0].Category != "餐饮" || view.Entries[0].Percent != 75.0 {
		t.Fatalf("top entry = %+v", view.Entries[0])
	}
	if view.Entries[1].Percent != 25.0 {
		t.Fatalf("second entry = %+v", view.Entries[1])
	}
	var sum float64
	for _, e := range view.Entries {
		sum += e.Percent
	}
	if math.Abs(sum-100) > 0.2 {
		t.Fatalf("percentages sum to %v", sum)
	}

	income := CategoryBreakdown(totals, core.Income)
	if len(income.Entries) != 1 || income.Entries[0].Category != "工资" {
		t.Fatalf("income view = %+v", income)
	}
	if income.Entries[0].Amount != "¥5000.00" {
		t.Fatalf("amount = %q", income.Entries[0].Amount)
	}
}

func TestCategoryBreakdownPlaceholders(t *testing.T) {
	expense := CategoryBreakdown(nil, core.Expense)
	if !expense.Empty || expense.Placeholder != "暂无支出数据" {
		t.Fatalf("expense placeholder = %+v", expense)
	}
	income := CategoryBreakdown(nil, core.Income)
	if !income.Empty || income.Placeholder != "暂无收入数据" {
		t.Fatalf("income placeholder = %+v", income)
	}
}

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestDailyChart(t *testing.T) {
	if png, err := DailyChart(nil, 400, 200); png != nil || err != nil {
		t.Fatalf("empty data should yield nothing, got %d bytes, %v", len(png), err)
	}

	daily := map[string]core.DailyFlow{
		"2024-03-14": {Income: core.Money{Cents: 10000}},
		"2024-03-15": {Expense: core.Money{Cents: 4250}},
	}
	png, err := DailyChart(daily, 400, 200)
	if err != nil {
		t.Fatalf("DailyChart: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatal("output is not a PNG")
	}
}

func TestDailyChartSingleDay(t *testing.T) {
	daily := map[string]core.DailyFlow{
		"2024-03-15": {Expense: core.Money{Cents: 4250}},
	}
	png, err := DailyChart(daily, 400, 200)
	if err != nil {
		t.Fatalf("DailyChart: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatal("output is not a PNG")
	}
}

func TestDonutChart(t *testing.T) {
	if png, err := DonutChart(BreakdownView{Empty: true}, 400, 400); png != nil || err != nil {
		t.Fatalf("empty view should yield nothing, got %d bytes, %v", len(png), err)
	}

	view := CategoryBreakdown([]core.CategoryTotal{
		{Category: "餐饮", Type: core.Expense, Total: core.Money{Cents: 7500}},
		{Category: "交通", Type: core.Expense, Total: core.Money{Cents: 2500}},
	}, core.Expense)
	png, err := DonutChart(view, 400, 400)
	if err != nil {
		t.Fatalf("DonutChart: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatal("output is not a PNG")
	}
}
