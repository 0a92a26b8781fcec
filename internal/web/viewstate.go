package web

import (
	"sync"

	"moneyboard/internal/core"
	"moneyboard/internal/dashboard"
	"moneyboard/internal/log"
	"moneyboard/internal/render"
	"moneyboard/internal/selection"
)

const maxNotices = 20

// ViewState is the display surface behind the HTTP endpoints: it
// receives refresh results from the orchestrator, runs the renderers
// and keeps the latest view models for readers. Data that failed to
// refresh keeps its previous, stale-but-valid rendering.
type ViewState struct {
	chartWidth  int
	chartHeight int
	logger      *log.Logger

	mu        sync.RWMutex
	table     render.TableView
	monthCard render.CardView
	yearCard  render.YearCardView
	breakdown render.BreakdownView
	dailyPNG  []byte
	donutPNG  []byte
	notices   []dashboard.Notice
}

// NewViewState creates an empty view surface.
func NewViewState(chartWidth, chartHeight int, logger *log.Logger) *ViewState {
	return &ViewState{
		chartWidth:  chartWidth,
		chartHeight: chartHeight,
		logger:      logger.WithComponent(log.ComponentRender),
		table:       render.Table(nil),
		breakdown:   render.CategoryBreakdown(nil, core.Expense),
	}
}

// ShowRecords implements dashboard.View.
func (v *ViewState) ShowRecords(records []core.Record, snap selection.Snapshot) {
	table := render.Table(records)
	v.mu.Lock()
	v.table = table
	v.mu.Unlock()
}

// ShowRangeStats implements dashboard.View: it feeds both the daily
// chart and the category breakdown for the snapshot's toggle.
func (v *ViewState) ShowRangeStats(stats core.RangeStats, snap selection.Snapshot) {
	breakdown := render.CategoryBreakdown(stats.ByCategory, snap.Toggle)

	dailyPNG, err := render.DailyChart(stats.Daily, v.chartWidth, v.chartHeight)
	if err != nil {
		v.logger.Error("Daily chart rendering failed", log.FieldOperation, log.OpRender, log.FieldError, err)
		dailyPNG = nil
	}
	donutPNG, err := render.DonutChart(breakdown, v.chartWidth, v.chartHeight)
	if err != nil {
		v.logger.Error("Donut chart rendering failed", log.FieldOperation, log.OpRender, log.FieldError, err)
		donutPNG = nil
	}

	v.mu.Lock()
	v.breakdown = breakdown
	v.dailyPNG = dailyPNG
	v.donutPNG = donutPNG
	v.mu.Unlock()
}

// ShowMonthSummary implements dashboard.View.
func (v *ViewState) ShowMonthSummary(summary core.MonthSummary) {
	card := render.MonthCard(summary)
	v.mu.Lock()
	v.monthCard = card
	v.mu.Unlock()
}

// ShowYearSummary implements dashboard.View.
func (v *ViewState) ShowYearSummary(summary core.YearSummary) {
	card := render.YearCard(summary)
	v.mu.Lock()
	v.yearCard = card
	v.mu.Unlock()
}

// ShowNotice implements dashboard.View, keeping the most recent
// notices.
func (v *ViewState) ShowNotice(notice dashboard.Notice) {
	v.mu.Lock()
	v.notices = append(v.notices, notice)
	if len(v.notices) > maxNotices {
		v.notices = v.notices[len(v.notices)-maxNotices:]
	}
	v.mu.Unlock()
}

// DashboardView is the JSON shape of the whole dashboard.
type DashboardView struct {
	Table     render.TableView     `json:"table"`
	MonthCard render.CardView      `json:"month_summary"`
	YearCard  render.YearCardView  `json:"year_summary"`
	Breakdown render.BreakdownView `json:"category_breakdown"`
	Notices   []dashboard.Notice   `json:"notices"`
}

// Dashboard returns a copy of the current view models.
func (v *ViewState) Dashboard() DashboardView {
	v.mu.RLock()
	defer v.mu.RUnlock()
	notices := make([]dashboard.Notice, len(v.notices))
	copy(notices, v.notices)
	return DashboardView{
		Table:     v.table,
		MonthCard: v.monthCard,
		YearCard:  v.yearCard,
		Breakdown: v.breakdown,
		Notices:   notices,
	}
}

// DailyPNG returns the current daily chart image, nil when no data has
// been drawn yet.
func (v *ViewState) DailyPNG() []byte {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.dailyPNG
}

// DonutPNG returns the current category donut image, nil when empty.
func (v *ViewState) DonutPNG() []byte {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.donutPNG
}
