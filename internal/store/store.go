// Package store defines the record-service port and its backends: an
// HTTP client for the external service and an in-process store used by
// the demo backend and tests. Only the refresh orchestrator talks to a
// Store.
package store

import (
	"context"

	"moneyboard/internal/core"
)

// ListFilter narrows a record listing. All fields are optional.
type ListFilter struct {
	Range    core.DateRange
	Category string
}

// Store is the record service as seen by the dashboard: four reads and
// two writes. Every call is blocking I/O and may fail; failures come
// back as a tagged *Error, never as a panic.
type Store interface {
	// ListRecords returns records matching the filter, newest first.
	ListRecords(ctx context.Context, filter ListFilter) ([]core.Record, error)

	// CreateRecord submits a draft and returns the stored record with
	// its service-assigned ID.
	CreateRecord(ctx context.Context, draft core.RecordDraft) (core.Record, error)

	// DeleteRecord removes a record by ID. Deleting an unknown ID is a
	// KindNotFound error.
	DeleteRecord(ctx context.Context, id int64) error

	// RangeStats returns the per-day and per-category aggregates for a
	// date range.
	RangeStats(ctx context.Context, r core.DateRange) (core.RangeStats, error)

	// MonthSummary returns the aggregate for one calendar month.
	MonthSummary(ctx context.Context, year, month int) (core.MonthSummary, error)

	// YearSummary returns the aggregate for one calendar year.
	YearSummary(ctx context.Context, year int) (core.YearSummary, error)
}
