package service

import (
	"sort"
	"time"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/centsible/centsible-backend/internal/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// summaryWindowMonths is the dashboard window size: the 12 calendar months
// ending at the current month, inclusive.
const summaryWindowMonths = 12

// SummaryService computes the dashboard aggregates from a user's expense
// set. It is a pure function of (stored expenses, now); nothing here
// mutates state.
type SummaryService struct {
	expenseRepo       domain.ExpenseRepository
	allocationService *BudgetAllocationService
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(expenseRepo domain.ExpenseRepository, allocationService *BudgetAllocationService) *SummaryService {
	return &SummaryService{
		expenseRepo:       expenseRepo,
		allocationService: allocationService,
	}
}

// GetSummary computes the summary as of the current month
func (s *SummaryService) GetSummary(userID uuid.UUID) (*domain.Summary, error) {
	return s.Summarize(userID, time.Now().UTC())
}

// Summarize computes the dashboard aggregates as of now's month.
//
// The monthly time series always has exactly 12 entries: every month in
// the window appears, zero-filled when it has no expenses. The monthly
// average divides the window total by the fixed 12, not by the number of
// months with data. The category rollup covers the user's whole history,
// not just the window, and its per-month subtotals hold only months that
// actually have an expense in that category.
func (s *SummaryService) Summarize(userID uuid.UUID, now time.Time) (*domain.Summary, error) {
	expenses, err := s.expenseRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	allocation, err := s.allocationService.Get(userID)
	if err != nil {
		return nil, err
	}

	months := util.WindowMonths(now, summaryWindowMonths)
	monthlyTotals := make(map[string]decimal.Decimal, len(months))
	for _, m := range months {
		monthlyTotals[util.MonthKey(m)] = decimal.Zero
	}

	grandTotal := decimal.Zero
	windowTotal := decimal.Zero
	for _, expense := range expenses {
		grandTotal = grandTotal.Add(expense.Amount)

		key := util.MonthKey(expense.Date)
		if bucket, ok := monthlyTotals[key]; ok {
			monthlyTotals[key] = bucket.Add(expense.Amount)
			windowTotal = windowTotal.Add(expense.Amount)
		}
	}

	series := domain.TimeSeries{
		Labels: make([]string, len(months)),
		Values: make([]decimal.Decimal, len(months)),
	}
	for i, m := range months {
		series.Labels[i] = util.MonthLabel(m)
		series.Values[i] = monthlyTotals[util.MonthKey(m)]
	}

	monthlyAverage := windowTotal.Div(decimal.NewFromInt(summaryWindowMonths))

	return &domain.Summary{
		GrandTotal:     grandTotal,
		MonthlyAverage: monthlyAverage,
		TimeSeries:     series,
		Categories:     rollupByCategory(expenses),
		Allocation:     allocation,
	}, nil
}

// rollupByCategory groups the full expense history by category. Categories
// come out in declaration order (Needs, Wants, Savings, Investments) with
// empty ones omitted; entries within a category are date ascending.
func rollupByCategory(expenses []*domain.Expense) []*domain.CategoryBreakdown {
	byCategory := make(map[domain.Category][]*domain.Expense)
	for _, expense := range expenses {
		byCategory[expense.Category] = append(byCategory[expense.Category], expense)
	}

	breakdowns := make([]*domain.CategoryBreakdown, 0, len(byCategory))
	for _, category := range domain.Categories {
		group, ok := byCategory[category]
		if !ok {
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		breakdown := &domain.CategoryBreakdown{
			Category:      category,
			Total:         decimal.Zero,
			Entries:       make([]domain.CategoryEntry, 0, len(group)),
			MonthlyTotals: make(map[string]decimal.Decimal),
		}
		for _, expense := range group {
			breakdown.Total = breakdown.Total.Add(expense.Amount)
			breakdown.Entries = append(breakdown.Entries, domain.CategoryEntry{
				Date:   expense.Date,
				Amount: expense.Amount,
			})
			key := util.MonthKey(expense.Date)
			breakdown.MonthlyTotals[key] = breakdown.MonthlyTotals[key].Add(expense.Amount)
		}

		breakdowns = append(breakdowns, breakdown)
	}

	return breakdowns
}
