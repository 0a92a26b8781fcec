package render

import (
	"math"
	"sort"

	"moneyboard/internal/core"
)

// BreakdownEntry is one category's share of the active toggle's total.
type BreakdownEntry struct {
	Category string  `json:"category"`
	Icon     string  `json:"icon"`
	Amount   string  `json:"amount"`
	Percent  float64 `json:"percent"`
}

// BreakdownView is the category list next to the donut chart, filtered
// to one record type.
type BreakdownView struct {
	Type        core.RecordType  `json:"type"`
	Entries     []BreakdownEntry `json:"entries"`
	Empty       bool             `json:"empty"`
	Placeholder string           `json:"placeholder,omitempty"`
}

// CategoryBreakdown filters totals to the active toggle and computes
// each category's percentage of that subset, rounded to one decimal.
// Entries are ordered largest first.
func CategoryBreakdown(totals []core.CategoryTotal, toggle core.RecordType) BreakdownView {
	matched := filterTotals(totals, toggle)
	if len(matched) == 0 {
		placeholder := "暂无支出数据"
		if toggle == core.Income {
			placeholder = "暂无收入数据"
		}
		return BreakdownView{Type: toggle, Empty: true, Placeholder: placeholder}
	}

	var sum int64
	for _, t := range matched {
		sum += t.Total.Abs().Cents
	}

	view := BreakdownView{Type: toggle}
	for _, t := range matched {
		amount := t.Total.Abs()
		percent := float64(amount.Cents) / float64(sum) * 100
		view.Entries = append(view.Entries, BreakdownEntry{
			Category: t.Category,
			Icon:     core.CategoryIcon(t.Category),
			Amount:   core.FormatYuan(amount),
			Percent:  math.Round(percent*10) / 10,
		})
	}
	sort.SliceStable(view.Entries, func(i, j int) bool {
		return view.Entries[i].Percent > view.Entries[j].Percent
	})
	return view
}

func filterTotals(totals []core.CategoryTotal, toggle core.RecordType) []core.CategoryTotal {
	var matched []core.CategoryTotal
	for _, t := range totals {
		if t.Type == toggle && t.Total.Cents != 0 {
			matched = append(matched, t)
		}
	}
	return matched
}
