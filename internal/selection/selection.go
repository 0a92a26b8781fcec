// Package selection holds the dashboard's cursors: the month and year
// under summary, the expense/income toggle and the optional date-range
// filter for the table view. Mutations go through the operations here
// and nowhere else; the state never issues a fetch on its own.
package selection

import (
	"fmt"
	"time"

	"moneyboard/internal/core"
)

// MonthCursor addresses one calendar month. Month is always 1-12;
// stepping past either end carries into the year.
type MonthCursor struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// YearCursor addresses one calendar year. No bound is enforced.
type YearCursor struct {
	Year int `json:"year"`
}

// ConfigurationError reports a rejected cursor mutation. The state is
// left exactly as it was; invalid input is never clamped.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Snapshot is an immutable copy of all cursors, taken at dispatch time
// so in-flight work never reads state that a later action has moved.
type Snapshot struct {
	Month  MonthCursor
	Year   YearCursor
	Toggle core.RecordType
	Range  core.DateRange
}

// State holds the live cursors. It is not safe for concurrent use; the
// single writer (the user-action handler layer) serializes access.
type State struct {
	month  MonthCursor
	year   YearCursor
	toggle core.RecordType
	rng    core.DateRange
}

// NewState returns a state positioned on the month and year containing
// now, with the expense toggle active and no range filter.
func NewState(now time.Time) *State {
	return &State{
		month:  MonthCursor{Year: now.Year(), Month: int(now.Month())},
		year:   YearCursor{Year: now.Year()},
		toggle: core.Expense,
	}
}

// Snapshot returns a copy of the current cursors.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Month: s.month, Year: s.year, Toggle: s.toggle, Range: s.rng}
}

// SetMonth moves the month cursor to an explicit year and month.
func (s *State) SetMonth(year, month int) (MonthCursor, error) {
	if year < 1 {
		return s.month, &ConfigurationError{Field: "year", Reason: fmt.Sprintf("%d is not a valid year", year)}
	}
	if month < 1 || month > 12 {
		return s.month, &ConfigurationError{Field: "month", Reason: fmt.Sprintf("%d is outside 1..12", month)}
	}
	s.month = MonthCursor{Year: year, Month: month}
	return s.month, nil
}

// StepMonth moves the month cursor by one month in either direction,
// rolling December into January of the next year and January back into
// December of the previous one.
func (s *State) StepMonth(delta int) (MonthCursor, error) {
	if delta != 1 && delta != -1 {
		return s.month, &ConfigurationError{Field: "month step", Reason: fmt.Sprintf("step must be +1 or -1, got %d", delta)}
	}
	year, month := s.month.Year, s.month.Month+delta
	if month < 1 {
		month = 12
		year--
	}
	if month > 12 {
		month = 1
		year++
	}
	s.month = MonthCursor{Year: year, Month: month}
	return s.month, nil
}

// SetYear moves the year cursor to an explicit year.
func (s *State) SetYear(year int) (YearCursor, error) {
	if year < 1 {
		return s.year, &ConfigurationError{Field: "year", Reason: fmt.Sprintf("%d is not a valid year", year)}
	}
	s.year = YearCursor{Year: year}
	return s.year, nil
}

// StepYear moves the year cursor by one year in either direction.
func (s *State) StepYear(delta int) (YearCursor, error) {
	if delta != 1 && delta != -1 {
		return s.year, &ConfigurationError{Field: "year step", Reason: fmt.Sprintf("step must be +1 or -1, got %d", delta)}
	}
	s.year = YearCursor{Year: s.year.Year + delta}
	return s.year, nil
}

// SetToggle switches the category breakdown between expense and income.
func (s *State) SetToggle(t core.RecordType) (core.RecordType, error) {
	if !t.IsValid() {
		return s.toggle, &ConfigurationError{Field: "toggle", Reason: fmt.Sprintf("%q is not expense or income", string(t))}
	}
	s.toggle = t
	return s.toggle, nil
}

// SetRange replaces the date-range filter. Either bound may be absent;
// the service owns start/end ordering validation, so none happens here.
func (s *State) SetRange(r core.DateRange) core.DateRange {
	s.rng = r
	return s.rng
}
