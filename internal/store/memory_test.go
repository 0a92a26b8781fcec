package store

import (
	"context"
	"testing"

	"moneyboard/internal/core"
)

func seededStore() *MemoryStore {
	s := NewMemoryStore()
	s.Seed(
		core.RecordDraft{Type: core.Expense, Amount: core.Money{Cents: 4250}, Category: "餐饮", Date: core.NewDate(2024, 3, 15)},
		core.RecordDraft{Type: core.Income, Amount: core.Money{Cents: 500000}, Category: "工资", Date: core.NewDate(2024, 3, 1)},
		core.RecordDraft{Type: core.Expense, Amount: core.Money{Cents: 1200}, Category: "交通", Date: core.NewDate(2024, 3, 20)},
		core.RecordDraft{Type: core.Expense, Amount: core.Money{Cents: 8000}, Category: "餐饮", Date: core.NewDate(2024, 4, 2)},
	)
	return s
}

func TestMemoryListRecords(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	all, err := s.ListRecords(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d records", len(all))
	}
	// Newest first.
	if all[0].Date.ISO() != "2024-04-02" || all[3].Date.ISO() != "2024-03-01" {
		t.Fatalf("order = %s .. %s", all[0].Date.ISO(), all[3].Date.ISO())
	}

	start := core.NewDate(2024, 3, 1)
	end := core.NewDate(2024, 3, 31)
	march, err := s.ListRecords(ctx, ListFilter{Range: core.DateRange{Start: &start, End: &end}})
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(march) != 3 {
		t.Fatalf("march records = %d", len(march))
	}

	food, err := s.ListRecords(ctx, ListFilter{Category: "餐饮"})
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(food) != 2 {
		t.Fatalf("category filter = %d records", len(food))
	}
}

func TestMemoryCreateAndDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateRecord(ctx, core.RecordDraft{
		Type:     core.Expense,
		Amount:   core.Money{Cents: 4250},
		Category: "餐饮",
		Date:     core.NewDate(2024, 3, 15),
	})
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("id = %d", created.ID)
	}

	if _, err := s.CreateRecord(ctx, core.RecordDraft{}); err == nil {
		t.Fatal("invalid draft accepted")
	}

	if err := s.DeleteRecord(ctx, created.ID); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
	if err := s.DeleteRecord(ctx, created.ID); !IsNotFound(err) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestMemoryRangeStats(t *testing.T) {
	s := seededStore()
	start := core.NewDate(2024, 3, 1)
	end := core.NewDate(2024, 3, 31)
	stats, err := s.RangeStats(context.Background(), core.DateRange{Start: &start, End: &end})
	if err != nil {
		t.Fatalf("RangeStats: %v", err)
	}

	if len(stats.Daily) != 3 {
		t.Fatalf("daily days = %d", len(stats.Daily))
	}
	if flow := stats.Daily["2024-03-01"]; flow.Income.Cents != 500000 || flow.Expense.Cents != 0 {
		t.Fatalf("2024-03-01 = %+v", flow)
	}
	if flow := stats.Daily["2024-03-15"]; flow.Expense.Cents != 4250 {
		t.Fatalf("2024-03-15 = %+v", flow)
	}

	if len(stats.ByCategory) != 3 {
		t.Fatalf("categories = %+v", stats.ByCategory)
	}
	var foodTotal int64
	for _, ct := range stats.ByCategory {
		if ct.Category == "餐饮" && ct.Type == core.Expense {
			foodTotal = ct.Total.Cents
		}
	}
	if foodTotal != 4250 {
		t.Fatalf("餐饮 total = %d", foodTotal)
	}
}

func TestMemoryMonthSummary(t *testing.T) {
	s := seededStore()
	summary, err := s.MonthSummary(context.Background(), 2024, 3)
	if err != nil {
		t.Fatalf("MonthSummary: %v", err)
	}
	if summary.Income.Cents != 500000 || summary.Expense.Cents != 5450 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Balance.Cents != 494550 {
		t.Fatalf("balance = %d", summary.Balance.Cents)
	}

	empty, err := s.MonthSummary(context.Background(), 2030, 1)
	if err != nil {
		t.Fatalf("MonthSummary: %v", err)
	}
	if empty.Income.Cents != 0 || empty.Expense.Cents != 0 || empty.Balance.Cents != 0 {
		t.Fatalf("empty month = %+v", empty)
	}
}

func TestMemoryYearSummary(t *testing.T) {
	s := seededStore()
	summary, err := s.YearSummary(context.Background(), 2024)
	if err != nil {
		t.Fatalf("YearSummary: %v", err)
	}
	if summary.Income.Cents != 500000 || summary.Expense.Cents != 13450 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.Monthly) != 12 {
		t.Fatalf("monthly breakdown has %d months", len(summary.Monthly))
	}
	march := summary.Monthly[3]
	if march.Income.Cents != 500000 || march.Expense.Cents != 5450 || march.Balance.Cents != 494550 {
		t.Fatalf("march = %+v", march)
	}
	april := summary.Monthly[4]
	if april.Expense.Cents != 8000 || april.Balance.Cents != -8000 {
		t.Fatalf("april = %+v", april)
	}
	if may := summary.Monthly[5]; may.Income.Cents != 0 || may.Expense.Cents != 0 {
		t.Fatalf("may = %+v", may)
	}
}
