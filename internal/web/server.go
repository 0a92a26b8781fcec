// Package web is the user-action surface of the dashboard. Its
// handlers are the single writer of the selection state: each one
// mutates exactly one cursor, snapshots the result and hands the
// snapshot to the orchestrator. Nothing here talks to the record
// service directly.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"moneyboard/internal/core"
	"moneyboard/internal/dashboard"
	"moneyboard/internal/log"
	"moneyboard/internal/selection"
	"moneyboard/internal/store"
)

// Server holds the selection state and routes user actions to the
// orchestrator.
type Server struct {
	mux    *http.ServeMux
	logger *log.Logger

	// baseCtx outlives individual requests; refresh work dispatched by
	// a handler must not die with the handler's request context.
	baseCtx context.Context

	// stateMu enforces the single-writer rule: mutation, snapshot and
	// dispatch happen as one step so issue numbers follow action order.
	stateMu sync.Mutex
	state   *selection.State
	orch    *dashboard.Orchestrator
	views   *ViewState
}

// NewServer wires the handlers. baseCtx bounds the lifetime of refresh
// work dispatched from user actions.
func NewServer(baseCtx context.Context, state *selection.State, orch *dashboard.Orchestrator, views *ViewState, logger *log.Logger) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger.WithComponent(log.ComponentWeb),
		baseCtx: baseCtx,
		state:   state,
		orch:    orch,
		views:   views,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /record", s.handleSubmitRecord)
	s.mux.HandleFunc("POST /record/{id}/delete", s.handleDeleteRecord)
	s.mux.HandleFunc("POST /filter", s.handleFilter)
	s.mux.HandleFunc("POST /month", s.handleSetMonth)
	s.mux.HandleFunc("POST /month/step", s.handleStepMonth)
	s.mux.HandleFunc("POST /year", s.handleSetYear)
	s.mux.HandleFunc("POST /year/step", s.handleStepYear)
	s.mux.HandleFunc("POST /toggle", s.handleToggle)
	s.mux.HandleFunc("GET /dashboard", s.handleDashboard)
	s.mux.HandleFunc("GET /charts/daily.png", s.handleDailyChart)
	s.mux.HandleFunc("GET /charts/category.png", s.handleDonutChart)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// Handler returns the server's handler chain.
func (s *Server) Handler() http.Handler {
	return requestLogging(s.logger)(s.mux)
}

func (s *Server) handleSubmitRecord(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Type     string      `json:"type"`
		Amount   json.Number `json:"amount"`
		Category string      `json:"category"`
		Date     string      `json:"date"`
		Note     string      `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	draft := core.RecordDraft{
		Type:     core.RecordType(payload.Type),
		Category: payload.Category,
		Note:     payload.Note,
	}
	if cents, err := core.ParseDecimalToCents(payload.Amount.String()); err == nil {
		draft.Amount = core.Money{Cents: cents}
	}
	if date, err := core.ParseDate(payload.Date); err == nil {
		draft.Date = date
	}

	s.stateMu.Lock()
	snap := s.state.Snapshot()
	err := s.orch.RecordSubmitted(s.baseCtx, draft, snap)
	s.stateMu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"result": "created"})
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	s.stateMu.Lock()
	snap := s.state.Snapshot()
	err = s.orch.RecordDeleted(s.baseCtx, id, snap)
	s.stateMu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": "deleted"})
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	var rng core.DateRange
	if payload.Start != "" {
		date, err := core.ParseDate(payload.Start)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start date")
			return
		}
		rng.Start = &date
	}
	if payload.End != "" {
		date, err := core.ParseDate(payload.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end date")
			return
		}
		rng.End = &date
	}

	s.stateMu.Lock()
	applied := s.state.SetRange(rng)
	snap := s.state.Snapshot()
	s.orch.FilterChanged(s.baseCtx, snap)
	s.stateMu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"range": applied.String()})
}

func (s *Server) handleSetMonth(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.stateMu.Lock()
	cursor, err := s.state.SetMonth(payload.Year, payload.Month)
	if err == nil {
		s.orch.MonthChanged(s.baseCtx, s.state.Snapshot())
	}
	s.stateMu.Unlock()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cursor)
}

func (s *Server) handleStepMonth(w http.ResponseWriter, r *http.Request) {
	delta, ok := parseDelta(w, r)
	if !ok {
		return
	}

	s.stateMu.Lock()
	cursor, err := s.state.StepMonth(delta)
	if err == nil {
		s.orch.MonthChanged(s.baseCtx, s.state.Snapshot())
	}
	s.stateMu.Unlock()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cursor)
}

func (s *Server) handleSetYear(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Year int `json:"year"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.stateMu.Lock()
	cursor, err := s.state.SetYear(payload.Year)
	if err == nil {
		s.orch.YearChanged(s.baseCtx, s.state.Snapshot())
	}
	s.stateMu.Unlock()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cursor)
}

func (s *Server) handleStepYear(w http.ResponseWriter, r *http.Request) {
	delta, ok := parseDelta(w, r)
	if !ok {
		return
	}

	s.stateMu.Lock()
	cursor, err := s.state.StepYear(delta)
	if err == nil {
		s.orch.YearChanged(s.baseCtx, s.state.Snapshot())
	}
	s.stateMu.Unlock()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cursor)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	s.stateMu.Lock()
	toggle, err := s.state.SetToggle(core.RecordType(payload.Type))
	if err == nil {
		s.orch.ToggleChanged(s.baseCtx, s.state.Snapshot())
	}
	s.stateMu.Unlock()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"type": string(toggle)})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.views.Dashboard())
}

func (s *Server) handleDailyChart(w http.ResponseWriter, r *http.Request) {
	servePNG(w, s.views.DailyPNG())
}

func (s *Server) handleDonutChart(w http.ResponseWriter, r *http.Request) {
	servePNG(w, s.views.DonutPNG())
}

func servePNG(w http.ResponseWriter, png []byte) {
	if len(png) == 0 {
		http.Error(w, "no chart data", http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func parseDelta(w http.ResponseWriter, r *http.Request) (int, bool) {
	var payload struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return 0, false
	}
	return payload.Delta, true
}

// statusFor maps orchestrator outcomes: local validation blocks with
// 422, a missing record is 404, everything reaching the service and
// failing is 502.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrInvalidDate):
		return http.StatusUnprocessableEntity
	case store.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
