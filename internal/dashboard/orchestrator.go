// Package dashboard drives the fetch-then-render cycles that keep the
// table, the two summary cards and the category breakdown in step with
// the selection cursors. Each surface has its own pipeline; pipelines
// run concurrently and never touch each other's data.
package dashboard

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"moneyboard/internal/core"
	"moneyboard/internal/log"
	"moneyboard/internal/selection"
	"moneyboard/internal/store"
)

// NoticeLevel grades a user-visible notice.
type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeWarn  NoticeLevel = "warning"
	NoticeError NoticeLevel = "error"
)

// Notice is a non-fatal message surfaced to the viewer, typically a
// failed fetch or a confirmed mutation.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// View receives refresh results. The orchestrator serializes all calls
// into it, so implementations need no locking of their own. Month and
// year summaries carry the cursor they resolved for; the view reflects
// that cursor back into its selector widgets.
type View interface {
	ShowRecords(records []core.Record, snap selection.Snapshot)
	ShowRangeStats(stats core.RangeStats, snap selection.Snapshot)
	ShowMonthSummary(summary core.MonthSummary)
	ShowYearSummary(summary core.YearSummary)
	ShowNotice(notice Notice)
}

// Orchestrator is the only component that calls the record store. User
// action handlers hand it a selection snapshot; it decides which
// pipelines to re-run and discards any completion that a newer dispatch
// of the same pipeline has already superseded.
type Orchestrator struct {
	store  store.Store
	view   View
	logger *log.Logger

	// Per-pipeline issue numbers. A completion may only apply while its
	// issue is still the latest one for that pipeline; an older response
	// arriving late is dropped, never shown.
	tableIssue atomic.Uint64
	monthIssue atomic.Uint64
	yearIssue  atomic.Uint64

	wg sync.WaitGroup

	// mu serializes view application and guards the retained range
	// stats that back toggle-only breakdown re-renders.
	mu        sync.Mutex
	lastStats *core.RangeStats
}

// New creates an orchestrator over the given store and view sink.
func New(st store.Store, view View, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		store:  st,
		view:   view,
		logger: logger.WithComponent(log.ComponentDashboard),
	}
}

// Wait blocks until every in-flight pipeline goroutine has finished.
// Used on shutdown and by tests; new dispatches issued while waiting
// are waited for too.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// RefreshAll re-runs the table, month and year pipelines, e.g. on
// initial load.
func (o *Orchestrator) RefreshAll(ctx context.Context, snap selection.Snapshot) {
	o.refreshTable(ctx, snap)
	o.refreshMonth(ctx, snap)
	o.refreshYear(ctx, snap)
}

// FilterChanged re-runs the table pipeline for a new date range.
func (o *Orchestrator) FilterChanged(ctx context.Context, snap selection.Snapshot) {
	o.refreshTable(ctx, snap)
}

// MonthChanged re-runs the month summary pipeline for the snapshot's
// month cursor.
func (o *Orchestrator) MonthChanged(ctx context.Context, snap selection.Snapshot) {
	o.refreshMonth(ctx, snap)
}

// YearChanged re-runs the year summary pipeline for the snapshot's
// year cursor.
func (o *Orchestrator) YearChanged(ctx context.Context, snap selection.Snapshot) {
	o.refreshYear(ctx, snap)
}

// ToggleChanged re-renders the category breakdown for the new toggle
// from the most recent range stats. No fetch happens unless no stats
// have arrived yet, in which case the table pipeline runs to get some.
func (o *Orchestrator) ToggleChanged(ctx context.Context, snap selection.Snapshot) {
	o.mu.Lock()
	if o.lastStats != nil {
		stats := *o.lastStats
		o.view.ShowRangeStats(stats, snap)
		o.mu.Unlock()
		return
	}
	o.mu.Unlock()
	o.refreshTable(ctx, snap)
}

// RecordSubmitted validates and creates a record. Validation failures
// surface immediately and send nothing. A store failure surfaces as a
// notice and triggers no refresh. Only a confirmed success fans out to
// the table, month and year pipelines, once each; the year pipeline is
// included unconditionally because the store has no cheap way to tell
// whether the record's date falls in the viewed year.
func (o *Orchestrator) RecordSubmitted(ctx context.Context, draft core.RecordDraft, snap selection.Snapshot) error {
	if err := draft.Validate(); err != nil {
		o.logger.WarnContext(ctx, "Record rejected before submission",
			log.FieldOperation, log.OpCreate, log.FieldError, err)
		o.notify(Notice{Level: NoticeWarn, Message: "Invalid record: " + err.Error()})
		return err
	}

	created, err := o.store.CreateRecord(ctx, draft)
	if err != nil {
		o.logger.ErrorContext(ctx, "Record creation failed",
			log.FieldOperation, log.OpCreate, log.FieldError, err)
		o.notify(Notice{Level: NoticeError, Message: "Failed to add record: " + err.Error()})
		return err
	}

	o.logger.InfoContext(ctx, "Record created",
		log.FieldRecordID, created.ID,
		log.FieldCategory, created.Category,
		log.FieldAmount, created.Amount.Float64())
	o.notify(Notice{Level: NoticeInfo, Message: "Record added"})
	o.fanOut(ctx, snap)
	return nil
}

// RecordDeleted removes a record by ID with the same outcome rules as
// RecordSubmitted: refreshes fire only after a confirmed success.
func (o *Orchestrator) RecordDeleted(ctx context.Context, id int64, snap selection.Snapshot) error {
	if err := o.store.DeleteRecord(ctx, id); err != nil {
		o.logger.ErrorContext(ctx, "Record deletion failed",
			log.FieldOperation, log.OpDelete, log.FieldRecordID, id, log.FieldError, err)
		message := "Failed to delete record: " + err.Error()
		if store.IsNotFound(err) {
			message = "Record already gone"
		}
		o.notify(Notice{Level: NoticeError, Message: message})
		return err
	}

	o.logger.InfoContext(ctx, "Record deleted", log.FieldRecordID, id)
	o.notify(Notice{Level: NoticeInfo, Message: "Record deleted"})
	o.fanOut(ctx, snap)
	return nil
}

func (o *Orchestrator) fanOut(ctx context.Context, snap selection.Snapshot) {
	o.refreshTable(ctx, snap)
	o.refreshMonth(ctx, snap)
	o.refreshYear(ctx, snap)
}

// refreshTable runs pipeline 1: records and range stats fetch
// concurrently and render independently, so one failed half never
// blanks the other. A successful stats half also feeds the category
// breakdown.
func (o *Orchestrator) refreshTable(ctx context.Context, snap selection.Snapshot) {
	issue := o.tableIssue.Add(1)
	dispatchID := uuid.NewString()
	o.logger.DebugContext(ctx, "Dispatching refresh",
		log.FieldPipeline, log.PipelineTable, log.FieldIssue, issue,
		log.FieldDispatchID, dispatchID, log.FieldRangeStart, snap.Range.String())

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		var (
			records    []core.Record
			stats      core.RangeStats
			recordsErr error
			statsErr   error
		)
		var g errgroup.Group
		g.Go(func() error {
			records, recordsErr = o.store.ListRecords(ctx, store.ListFilter{Range: snap.Range})
			return nil
		})
		g.Go(func() error {
			stats, statsErr = o.store.RangeStats(ctx, snap.Range)
			return nil
		})
		_ = g.Wait()

		o.mu.Lock()
		defer o.mu.Unlock()
		if o.tableIssue.Load() != issue {
			o.logger.DebugContext(ctx, "Discarding stale completion",
				log.FieldPipeline, log.PipelineTable, log.FieldIssue, issue, log.FieldDispatchID, dispatchID)
			return
		}

		if recordsErr != nil {
			o.logger.WarnContext(ctx, "Record listing failed",
				log.FieldOperation, log.OpList, log.FieldDispatchID, dispatchID, log.FieldError, recordsErr)
			o.view.ShowNotice(Notice{Level: NoticeWarn, Message: "Failed to load records"})
		} else {
			o.view.ShowRecords(records, snap)
		}

		if statsErr != nil {
			o.logger.WarnContext(ctx, "Range stats fetch failed",
				log.FieldOperation, log.OpRangeStats, log.FieldDispatchID, dispatchID, log.FieldError, statsErr)
			o.view.ShowNotice(Notice{Level: NoticeWarn, Message: "Failed to load statistics"})
		} else {
			retained := stats
			o.lastStats = &retained
			o.view.ShowRangeStats(stats, snap)
		}
	}()
}

func (o *Orchestrator) refreshMonth(ctx context.Context, snap selection.Snapshot) {
	issue := o.monthIssue.Add(1)
	cursor := snap.Month
	o.logger.DebugContext(ctx, "Dispatching refresh",
		log.FieldPipeline, log.PipelineMonth, log.FieldIssue, issue,
		log.FieldYear, cursor.Year, log.FieldMonth, cursor.Month)

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		summary, err := o.store.MonthSummary(ctx, cursor.Year, cursor.Month)

		o.mu.Lock()
		defer o.mu.Unlock()
		if o.monthIssue.Load() != issue {
			o.logger.DebugContext(ctx, "Discarding stale completion",
				log.FieldPipeline, log.PipelineMonth, log.FieldIssue, issue)
			return
		}
		if err != nil {
			o.logger.WarnContext(ctx, "Month summary fetch failed",
				log.FieldOperation, log.OpMonthStats,
				log.FieldYear, cursor.Year, log.FieldMonth, cursor.Month, log.FieldError, err)
			o.view.ShowNotice(Notice{Level: NoticeWarn, Message: "Failed to load month summary"})
			return
		}
		o.view.ShowMonthSummary(summary)
	}()
}

func (o *Orchestrator) refreshYear(ctx context.Context, snap selection.Snapshot) {
	issue := o.yearIssue.Add(1)
	cursor := snap.Year
	o.logger.DebugContext(ctx, "Dispatching refresh",
		log.FieldPipeline, log.PipelineYear, log.FieldIssue, issue, log.FieldYear, cursor.Year)

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		summary, err := o.store.YearSummary(ctx, cursor.Year)

		o.mu.Lock()
		defer o.mu.Unlock()
		if o.yearIssue.Load() != issue {
			o.logger.DebugContext(ctx, "Discarding stale completion",
				log.FieldPipeline, log.PipelineYear, log.FieldIssue, issue)
			return
		}
		if err != nil {
			o.logger.WarnContext(ctx, "Year summary fetch failed",
				log.FieldOperation, log.OpYearStats, log.FieldYear, cursor.Year, log.FieldError, err)
			o.view.ShowNotice(Notice{Level: NoticeWarn, Message: "Failed to load year summary"})
			return
		}
		o.view.ShowYearSummary(summary)
	}()
}

func (o *Orchestrator) notify(n Notice) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.view.ShowNotice(n)
}
