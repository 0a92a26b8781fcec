// Package render turns fetched data and the current selection into
// display-ready view models and chart images. Everything here is a pure
// function of its inputs; nothing reaches the network or mutates shared
// state.
package render

import (
	"moneyboard/internal/core"
)

// TableRow is one display row of the record table.
type TableRow struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Icon     string `json:"icon"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Note     string `json:"note"`
}

// TableView is the record table, or its placeholder when there is
// nothing to show.
type TableView struct {
	Rows        []TableRow `json:"rows"`
	Empty       bool       `json:"empty"`
	Placeholder string     `json:"placeholder,omitempty"`
}

// Table renders records into table rows. An empty listing yields an
// explicit placeholder instead of a bare table.
func Table(records []core.Record) TableView {
	if len(records) == 0 {
		return TableView{Empty: true, Placeholder: "暂无记录"}
	}

	rows := make([]TableRow, 0, len(records))
	for _, r := range records {
		note := r.Note
		if note == "" {
			note = "-"
		}
		rows = append(rows, TableRow{
			ID:       r.ID,
			Type:     core.TypeLabel(r.Type),
			Icon:     core.CategoryIcon(r.Category),
			Amount:   core.FormatYuan(r.Amount),
			Category: r.Category,
			Date:     r.Date.ISO(),
			Note:     note,
		})
	}
	return TableView{Rows: rows}
}
