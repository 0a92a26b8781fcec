package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Expense RecordType = "expense"
	Income  RecordType = "income"
)

type (
	// RecordType distinguishes money flowing in from money flowing out.
	RecordType string

	// Date is a calendar day without a time component. It marshals to
	// and from the ISO form YYYY-MM-DD used on the wire.
	Date struct {
		time.Time
	}

	// Money is an amount in cents. Balances may be negative.
	Money struct {
		Cents int64
	}

	// Record is a booked income or expense entry. The ID is assigned by
	// the record service and never changes; records are created and
	// deleted, never edited in place.
	Record struct {
		ID       int64      `json:"id"`
		Type     RecordType `json:"type"`
		Amount   Money      `json:"amount"`
		Category string     `json:"category"`
		Date     Date       `json:"date"`
		Note     string     `json:"note,omitempty"`
	}

	// RecordDraft is a record as entered by the user, before the service
	// has accepted it and assigned an ID.
	RecordDraft struct {
		Type     RecordType
		Amount   Money
		Category string
		Date     Date
		Note     string
	}

	// DateRange is an optional filter window. A nil bound means open on
	// that side: no start reaches back to the earliest record, no end
	// runs through today. Start <= End is the service's job to check.
	DateRange struct {
		Start *Date
		End   *Date
	}
)

var (
	ErrInvalidType   = errors.New("invalid record type")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidDate   = errors.New("invalid date")
)

// IsValid reports whether t is one of the two known record types.
func (t RecordType) IsValid() bool {
	return t == Expense || t == Income
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// ISO returns the date in YYYY-MM-DD form.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the month as 1-12
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ISO())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("date %q: %w", s, err)
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Validate checks the minimal submission rules: a known type, a positive
// amount, a non-empty category and an explicit date. Anything it returns
// blocks the submission before a request is sent.
func (dr RecordDraft) Validate() error {
	if !dr.Type.IsValid() {
		return ErrInvalidType
	}
	if dr.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(dr.Category) == "" {
		return ErrEmptyCategory
	}
	if err := dr.Date.Validate(); err != nil {
		return err
	}
	return nil
}

// IsZero reports whether the range has no bounds at all.
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// String renders the range for logs and cache keys, with "*" for an
// open bound.
func (r DateRange) String() string {
	start, end := "*", "*"
	if r.Start != nil {
		start = r.Start.ISO()
	}
	if r.End != nil {
		end = r.End.ISO()
	}
	return start + ".." + end
}

// Contains reports whether d falls inside the range, treating absent
// bounds as open.
func (r DateRange) Contains(d Date) bool {
	if r.Start != nil && d.Before(r.Start.Time) {
		return false
	}
	if r.End != nil && d.After(r.End.Time) {
		return false
	}
	return true
}
