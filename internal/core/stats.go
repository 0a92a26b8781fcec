package core

// DailyFlow is one day's totals. Days with no activity are absent from
// the map that carries these.
type DailyFlow struct {
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
}

// CategoryTotal is one category's total for a queried range. Expense
// totals are positive magnitudes, same as income.
type CategoryTotal struct {
	Category string     `json:"category"`
	Type     RecordType `json:"type"`
	Total    Money      `json:"total"`
}

// RangeStats is the per-day and per-category aggregate for one date
// range. It is fetched in a single call and reflects only the moment
// that call resolved; it is not transactionally consistent with the
// month or year summaries.
type RangeStats struct {
	Daily      map[string]DailyFlow `json:"daily_stats"`
	ByCategory []CategoryTotal      `json:"by_category"`
}

// MonthSummary is the service's aggregate for one calendar month.
type MonthSummary struct {
	Year    int   `json:"year"`
	Month   int   `json:"month"`
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
	Balance Money `json:"balance"`
}

// MonthFlow is one month's slice of a year summary.
type MonthFlow struct {
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
	Balance Money `json:"balance"`
}

// YearSummary is the service's aggregate for one calendar year,
// including the per-month breakdown keyed 1-12.
type YearSummary struct {
	Year    int               `json:"year"`
	Income  Money             `json:"income"`
	Expense Money             `json:"expense"`
	Balance Money             `json:"balance"`
	Monthly map[int]MonthFlow `json:"monthly_stats,omitempty"`
}
