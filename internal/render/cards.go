package render

import (
	"fmt"

	"moneyboard/internal/core"
)

// CardView is one summary card: a period title, the signed balance and
// the income/expense figures behind it. Positive selects the card's
// visual tone.
type CardView struct {
	Title    string `json:"title"`
	Balance  string `json:"balance"`
	Income   string `json:"income"`
	Expense  string `json:"expense"`
	Positive bool   `json:"positive"`

	// Year and Month echo the cursor the summary resolved for, so the
	// selector widget can be set from the card, never the other way.
	Year  int `json:"year"`
	Month int `json:"month,omitempty"`
}

// MonthlyRow is one month's line in the year card breakdown.
type MonthlyRow struct {
	Month   int    `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

// YearCardView is the year summary card with its per-month breakdown.
type YearCardView struct {
	CardView
	Monthly []MonthlyRow `json:"monthly,omitempty"`
}

// MonthCard renders the month summary card.
func MonthCard(summary core.MonthSummary) CardView {
	return CardView{
		Title:    fmt.Sprintf("%d年%d月", summary.Year, summary.Month),
		Balance:  core.FormatSignedYuan(summary.Balance),
		Income:   core.FormatYuan(summary.Income),
		Expense:  core.FormatYuan(summary.Expense),
		Positive: summary.Balance.Cents >= 0,
		Year:     summary.Year,
		Month:    summary.Month,
	}
}

// YearCard renders the year summary card including the monthly rows.
// Months with no activity are skipped.
func YearCard(summary core.YearSummary) YearCardView {
	card := YearCardView{
		CardView: CardView{
			Title:    fmt.Sprintf("%d年", summary.Year),
			Balance:  core.FormatSignedYuan(summary.Balance),
			Income:   core.FormatYuan(summary.Income),
			Expense:  core.FormatYuan(summary.Expense),
			Positive: summary.Balance.Cents >= 0,
			Year:     summary.Year,
		},
	}
	for m := 1; m <= 12; m++ {
		flow, ok := summary.Monthly[m]
		if !ok || (flow.Income.Cents == 0 && flow.Expense.Cents == 0) {
			continue
		}
		card.Monthly = append(card.Monthly, MonthlyRow{
			Month:   m,
			Income:  core.FormatYuan(flow.Income),
			Expense: core.FormatYuan(flow.Expense),
			Balance: core.FormatSignedYuan(flow.Balance),
		})
	}
	return card
}
