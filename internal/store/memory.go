package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"moneyboard/internal/core"
)

// MemoryStore keeps records in process and computes the same aggregates
// the external service reports. It backs the demo mode and gives tests
// a store without a network.
type MemoryStore struct {
	mu      sync.Mutex
	records []core.Record
	nextID  int64
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Seed inserts records directly, assigning IDs. For demo data and tests.
func (s *MemoryStore) Seed(drafts ...core.RecordDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range drafts {
		s.records = append(s.records, s.place(d))
	}
}

func (s *MemoryStore) place(d core.RecordDraft) core.Record {
	rec := core.Record{
		ID:       s.nextID,
		Type:     d.Type,
		Amount:   d.Amount,
		Category: d.Category,
		Date:     d.Date,
		Note:     d.Note,
	}
	s.nextID++
	return rec
}

// ListRecords implements Store, newest first like the service.
func (s *MemoryStore) ListRecords(ctx context.Context, filter ListFilter) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Record
	for _, r := range s.records {
		if !filter.Range.Contains(r.Date) {
			continue
		}
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out, nil
}

// CreateRecord implements Store.
func (s *MemoryStore) CreateRecord(ctx context.Context, draft core.RecordDraft) (core.Record, error) {
	if err := draft.Validate(); err != nil {
		return core.Record{}, &Error{Kind: KindRemote, Op: "create", Message: err.Error()}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.place(draft)
	s.records = append(s.records, rec)
	return rec, nil
}

// DeleteRecord implements Store.
func (s *MemoryStore) DeleteRecord(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return notFoundError("delete", fmt.Sprintf("record %d not found", id))
}

// RangeStats implements Store.
func (s *MemoryStore) RangeStats(ctx context.Context, rng core.DateRange) (core.RangeStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	daily := map[string]core.DailyFlow{}
	type catKey struct {
		category string
		typ      core.RecordType
	}
	categories := map[catKey]core.Money{}
	var order []catKey

	for _, r := range s.records {
		if !rng.Contains(r.Date) {
			continue
		}
		day := r.Date.ISO()
		flow := daily[day]
		if r.Type == core.Income {
			flow.Income = flow.Income.Add(r.Amount)
		} else {
			flow.Expense = flow.Expense.Add(r.Amount)
		}
		daily[day] = flow

		key := catKey{r.Category, r.Type}
		if _, seen := categories[key]; !seen {
			order = append(order, key)
		}
		categories[key] = categories[key].Add(r.Amount)
	}

	stats := core.RangeStats{Daily: daily}
	for _, key := range order {
		stats.ByCategory = append(stats.ByCategory, core.CategoryTotal{
			Category: key.category,
			Type:     key.typ,
			Total:    categories[key],
		})
	}
	return stats, nil
}

// MonthSummary implements Store.
func (s *MemoryStore) MonthSummary(ctx context.Context, year, month int) (core.MonthSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := core.MonthSummary{Year: year, Month: month}
	for _, r := range s.records {
		if r.Date.Year() != year || r.Date.Month() != month {
			continue
		}
		if r.Type == core.Income {
			summary.Income = summary.Income.Add(r.Amount)
		} else {
			summary.Expense = summary.Expense.Add(r.Amount)
		}
	}
	summary.Balance = summary.Income.Sub(summary.Expense)
	return summary, nil
}

// YearSummary implements Store.
func (s *MemoryStore) YearSummary(ctx context.Context, year int) (core.YearSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := core.YearSummary{Year: year, Monthly: map[int]core.MonthFlow{}}
	for m := 1; m <= 12; m++ {
		summary.Monthly[m] = core.MonthFlow{}
	}
	for _, r := range s.records {
		if r.Date.Year() != year {
			continue
		}
		flow := summary.Monthly[r.Date.Month()]
		if r.Type == core.Income {
			summary.Income = summary.Income.Add(r.Amount)
			flow.Income = flow.Income.Add(r.Amount)
		} else {
			summary.Expense = summary.Expense.Add(r.Amount)
			flow.Expense = flow.Expense.Add(r.Amount)
		}
		flow.Balance = flow.Income.Sub(flow.Expense)
		summary.Monthly[r.Date.Month()] = flow
	}
	summary.Balance = summary.Income.Sub(summary.Expense)
	return summary, nil
}
