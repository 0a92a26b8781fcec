package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"moneyboard/internal/core"
	"moneyboard/internal/log"
)

// HTTPConfig holds settings for the HTTP store client.
type HTTPConfig struct {
	// BaseURL is the record service root, e.g. "http://localhost:5000/api".
	BaseURL string

	// Timeout bounds each request end to end.
	Timeout time.Duration

	// SummaryTTL is how long month and year summaries may be served
	// from cache. Zero disables the cache.
	SummaryTTL time.Duration

	// RequestsPerSecond paces outgoing calls during rapid cursor
	// stepping. Zero means no pacing.
	RequestsPerSecond float64
}

// HTTPStore talks JSON to the external record service. Failures of any
// shape normalize into *Error so the orchestrator can treat every call
// uniformly.
type HTTPStore struct {
	baseURL   string
	client    *http.Client
	limiter   *rate.Limiter
	summaries *gocache.Cache
	logger    *log.Logger
}

// NewHTTPStore creates a store client for the service at cfg.BaseURL.
func NewHTTPStore(cfg HTTPConfig, logger *log.Logger) (*HTTPStore, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("invalid service base URL %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	s := &HTTPStore{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger.WithComponent(log.ComponentStore),
	}
	if cfg.RequestsPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.RequestsPerSecond)+1)
	}
	if cfg.SummaryTTL > 0 {
		s.summaries = gocache.New(cfg.SummaryTTL, 2*cfg.SummaryTTL)
	}
	return s, nil
}

// ListRecords implements Store.
func (s *HTTPStore) ListRecords(ctx context.Context, filter ListFilter) ([]core.Record, error) {
	q := url.Values{}
	addRangeParams(q, filter.Range)
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}

	var records []core.Record
	if err := s.getJSON(ctx, log.OpList, "/records", q, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateRecord implements Store. Any success flushes the summary cache:
// the new record may move every cached aggregate.
func (s *HTTPStore) CreateRecord(ctx context.Context, draft core.RecordDraft) (core.Record, error) {
	payload := struct {
		Type     core.RecordType `json:"type"`
		Amount   core.Money      `json:"amount"`
		Category string          `json:"category"`
		Date     core.Date       `json:"date"`
		Note     string          `json:"note"`
	}{draft.Type, draft.Amount, draft.Category, draft.Date, draft.Note}

	var created core.Record
	if err := s.postJSON(ctx, log.OpCreate, "/record", payload, &created); err != nil {
		return core.Record{}, err
	}
	s.flushSummaries()
	return created, nil
}

// DeleteRecord implements Store. Like create, success invalidates all
// cached summaries.
func (s *HTTPStore) DeleteRecord(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/record/%d", id)
	if err := s.do(ctx, log.OpDelete, http.MethodDelete, path, nil, nil, nil); err != nil {
		return err
	}
	s.flushSummaries()
	return nil
}

// RangeStats implements Store.
func (s *HTTPStore) RangeStats(ctx context.Context, r core.DateRange) (core.RangeStats, error) {
	q := url.Values{}
	addRangeParams(q, r)

	var stats core.RangeStats
	if err := s.getJSON(ctx, log.OpRangeStats, "/stats", q, &stats); err != nil {
		return core.RangeStats{}, err
	}
	if stats.Daily == nil {
		stats.Daily = map[string]core.DailyFlow{}
	}
	return stats, nil
}

// MonthSummary implements Store, serving recently fetched summaries
// from cache until the TTL expires or a mutation flushes them.
func (s *HTTPStore) MonthSummary(ctx context.Context, year, month int) (core.MonthSummary, error) {
	key := fmt.Sprintf("month/%04d-%02d", year, month)
	if s.summaries != nil {
		if cached, ok := s.summaries.Get(key); ok {
			return cached.(core.MonthSummary), nil
		}
	}

	q := url.Values{}
	q.Set("year", fmt.Sprint(year))
	q.Set("month", fmt.Sprint(month))

	var payload struct {
		MonthSummary core.MonthSummary `json:"month_summary"`
	}
	if err := s.getJSON(ctx, log.OpMonthStats, "/stats", q, &payload); err != nil {
		return core.MonthSummary{}, err
	}
	if s.summaries != nil {
		s.summaries.SetDefault(key, payload.MonthSummary)
	}
	return payload.MonthSummary, nil
}

// YearSummary implements Store, with the same caching as MonthSummary.
func (s *HTTPStore) YearSummary(ctx context.Context, year int) (core.YearSummary, error) {
	key := fmt.Sprintf("year/%04d", year)
	if s.summaries != nil {
		if cached, ok := s.summaries.Get(key); ok {
			return cached.(core.YearSummary), nil
		}
	}

	q := url.Values{}
	q.Set("year", fmt.Sprint(year))

	var summary core.YearSummary
	if err := s.getJSON(ctx, log.OpYearStats, "/year-stats", q, &summary); err != nil {
		return core.YearSummary{}, err
	}
	if s.summaries != nil {
		s.summaries.SetDefault(key, summary)
	}
	return summary, nil
}

func (s *HTTPStore) flushSummaries() {
	if s.summaries != nil {
		s.summaries.Flush()
	}
}

func addRangeParams(q url.Values, r core.DateRange) {
	if r.Start != nil {
		q.Set("start", r.Start.ISO())
	}
	if r.End != nil {
		q.Set("end", r.End.ISO())
	}
}

func (s *HTTPStore) getJSON(ctx context.Context, op, path string, q url.Values, out any) error {
	return s.do(ctx, op, http.MethodGet, path, q, nil, out)
}

func (s *HTTPStore) postJSON(ctx context.Context, op, path string, body, out any) error {
	return s.do(ctx, op, http.MethodPost, path, nil, body, out)
}

// do issues one request and normalizes every failure mode. Transport
// errors and unreadable bodies are KindNetwork, a 404 is KindNotFound,
// any other non-success status is KindRemote with the service's error
// message when one was sent.
func (s *HTTPStore) do(ctx context.Context, op, method, path string, q url.Values, body, out any) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return networkError(op, err)
		}
	}

	u := s.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return networkError(op, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return networkError(op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.DebugContext(ctx, "Request failed",
			log.FieldOperation, op, log.FieldMethod, method, log.FieldPath, path, log.FieldError, err)
		return networkError(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return networkError(op, err)
	}

	s.logger.DebugContext(ctx, "Request completed",
		log.FieldOperation, op, log.FieldMethod, method, log.FieldPath, path,
		log.FieldStatusCode, resp.StatusCode, log.FieldDuration, time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := decodeErrorMessage(raw)
		if resp.StatusCode == http.StatusNotFound {
			return notFoundError(op, message)
		}
		return remoteError(op, resp.StatusCode, message)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return networkError(op, fmt.Errorf("malformed response body: %w", err))
		}
	}
	return nil
}

func decodeErrorMessage(raw []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Error
}
