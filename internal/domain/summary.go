package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeSeries is a chronological sequence of month labels with parallel
// totals. For the dashboard it is always exactly 12 entries long, with
// zero-filled months.
type TimeSeries struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// CategoryEntry is one dated amount inside a category breakdown.
type CategoryEntry struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryBreakdown aggregates a single category over the user's whole
// expense history. MonthlyTotals is keyed YYYY-MM and holds entries only
// for months that actually have an expense; unlike the dashboard time
// series it is not zero-filled.
type CategoryBreakdown struct {
	Category      Category                   `json:"category"`
	Total         decimal.Decimal            `json:"total"`
	Entries       []CategoryEntry            `json:"entries"`
	MonthlyTotals map[string]decimal.Decimal `json:"monthlyTotals"`
}

// Summary is the dashboard aggregate for one user at one point in time.
type Summary struct {
	GrandTotal     decimal.Decimal      `json:"grandTotal"`
	MonthlyAverage decimal.Decimal      `json:"monthlyAverage"`
	TimeSeries     TimeSeries           `json:"timeSeries"`
	Categories     []*CategoryBreakdown `json:"categories"`
	Allocation     *BudgetAllocation    `json:"allocation"`
}
