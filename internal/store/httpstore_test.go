package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"moneyboard/internal/core"
	"moneyboard/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.Config{
		Component: "test",
		Handler:   slog.NewTextHandler(io.Discard, nil),
	})
}

func newTestStore(t *testing.T, handler http.Handler, ttl time.Duration) (*HTTPStore, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	s, err := NewHTTPStore(HTTPConfig{BaseURL: srv.URL, SummaryTTL: ttl}, testLogger())
	if err != nil {
		t.Fatalf("NewHTTPStore: %v", err)
	}
	return s, srv
}

func TestNewHTTPStoreRejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "ftp://host", "://nope"} {
		if _, err := NewHTTPStore(HTTPConfig{BaseURL: u}, testLogger()); err == nil {
			t.Fatalf("%q: expected error", u)
		}
	}
}

func TestListRecords(t *testing.T) {
	var gotQuery atomic.Value
	s, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/records" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotQuery.Store(r.URL.Query().Encode())
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":7,"type":"expense","amount":42.5,"category":"餐饮","date":"2024-03-15","note":"lunch"}]`)
	}), 0)

	start := core.NewDate(2024, 3, 1)
	end := core.NewDate(2024, 3, 31)
	records, err := s.ListRecords(context.Background(), ListFilter{
		Range:    core.DateRange{Start: &start, End: &end},
		Category: "餐饮",
	})
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}
	rec := records[0]
	if rec.ID != 7 || rec.Type != core.Expense || rec.Amount.Cents != 4250 ||
		rec.Category != "餐饮" || rec.Date.ISO() != "2024-03-15" || rec.Note != "lunch" {
		t.Fatalf("record = %+v", rec)
	}
	if q := gotQuery.Load().(string); q != "category=%E9%A4%90%E9%A5%AE&end=2024-03-31&start=2024-03-01" {
		t.Fatalf("query = %q", q)
	}
}

func TestCreateRecord(t *testing.T) {
	s, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/record" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"type":"expense","amount":42.5,"category":"餐饮","date":"2024-03-15","note":""}` {
			t.Errorf("body = %s", body)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":12,"type":"expense","amount":42.5,"category":"餐饮","date":"2024-03-15"}`)
	}), 0)

	created, err := s.CreateRecord(context.Background(), core.RecordDraft{
		Type:     core.Expense,
		Amount:   core.Money{Cents: 4250},
		Category: "餐饮",
		Date:     core.NewDate(2024, 3, 15),
	})
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if created.ID != 12 {
		t.Fatalf("created = %+v", created)
	}
}

func TestDeleteRecordNotFound(t *testing.T) {
	s, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"record not found"}`)
	}), 0)

	err := s.DeleteRecord(context.Background(), 99)
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRemoteErrorCarriesMessage(t *testing.T) {
	s, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"start must not be after end"}`)
	}), 0)

	_, err := s.RangeStats(context.Background(), core.DateRange{})
	var se *Error
	if !errors.As(err, &se) || se.Kind != KindRemote {
		t.Fatalf("expected remote error, got %v", err)
	}
	if se.Message != "start must not be after end" {
		t.Fatalf("message = %q", se.Message)
	}
}

func TestNetworkErrors(t *testing.T) {
	s, srv := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), 0)
	srv.Close()

	_, err := s.ListRecords(context.Background(), ListFilter{})
	if !IsNetwork(err) {
		t.Fatalf("expected network error after server close, got %v", err)
	}
}

func TestMalformedBodyIsNetworkError(t *testing.T) {
	s, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{not json`)
	}), 0)

	_, err := s.ListRecords(context.Background(), ListFilter{})
	if !IsNetwork(err) {
		t.Fatalf("expected network error for malformed body, got %v", err)
	}
}

func TestRangeStatsDecoding(t *testing.T) {
	s, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{
			"daily_stats": {"2024-03-15": {"income": 0, "expense": 42.5}},
			"by_category": [{"category": "餐饮", "type": "expense", "total": 42.5}]
		}`)
	}), 0)

	stats, err := s.RangeStats(context.Background(), core.DateRange{})
	if err != nil {
		t.Fatalf("RangeStats: %v", err)
	}
	if flow := stats.Daily["2024-03-15"]; flow.Expense.Cents != 4250 {
		t.Fatalf("daily = %+v", stats.Daily)
	}
	if len(stats.ByCategory) != 1 || stats.ByCategory[0].Total.Cents != 4250 {
		t.Fatalf("by_category = %+v", stats.ByCategory)
	}
}

func TestSummaryCaching(t *testing.T) {
	var hits atomic.Int64
	s, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/stats":
			io.WriteString(w, `{"month_summary":{"year":2024,"month":3,"income":100,"expense":40,"balance":60}}`)
		case "/year-stats":
			io.WriteString(w, `{"year":2024,"income":1200,"expense":480,"balance":720}`)
		case "/record":
			io.WriteString(w, `{"id":1,"type":"expense","amount":1,"category":"餐饮","date":"2024-03-15"}`)
		}
	}), time.Minute)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		summary, err := s.MonthSummary(ctx, 2024, 3)
		if err != nil {
			t.Fatalf("MonthSummary: %v", err)
		}
		if summary.Balance.Cents != 6000 {
			t.Fatalf("balance = %d", summary.Balance.Cents)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("month summary hit the service %d times, want 1", hits.Load())
	}

	if _, err := s.YearSummary(ctx, 2024); err != nil {
		t.Fatalf("YearSummary: %v", err)
	}
	if _, err := s.YearSummary(ctx, 2024); err != nil {
		t.Fatalf("YearSummary: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("year summary not cached, %d hits", hits.Load())
	}

	// A mutation flushes the whole summary cache.
	if _, err := s.CreateRecord(ctx, core.RecordDraft{
		Type:     core.Expense,
		Amount:   core.Money{Cents: 100},
		Category: "餐饮",
		Date:     core.NewDate(2024, 3, 15),
	}); err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if _, err := s.MonthSummary(ctx, 2024, 3); err != nil {
		t.Fatalf("MonthSummary after flush: %v", err)
	}
	if hits.Load() != 4 {
		t.Fatalf("expected refetch after mutation, %d hits", hits.Load())
	}
}
