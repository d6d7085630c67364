package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetAllocation is a user's four-way percentage split. The sum may be
// under 100 (the remainder is unallocated) but never over.
type BudgetAllocation struct {
	UserID      uuid.UUID       `json:"userId"`
	Needs       decimal.Decimal `json:"needs"`
	Wants       decimal.Decimal `json:"wants"`
	Savings     decimal.Decimal `json:"savings"`
	Investments decimal.Decimal `json:"investments"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Sum returns the total of the four percentages.
func (a *BudgetAllocation) Sum() decimal.Decimal {
	return a.Needs.Add(a.Wants).Add(a.Savings).Add(a.Investments)
}

// DefaultAllocation is the split shown to users who have not saved one yet.
func DefaultAllocation(userID uuid.UUID) *BudgetAllocation {
	return &BudgetAllocation{
		UserID:      userID,
		Needs:       decimal.NewFromInt(50),
		Wants:       decimal.NewFromInt(30),
		Savings:     decimal.NewFromInt(20),
		Investments: decimal.Zero,
	}
}

type BudgetAllocationRepository interface {
	Get(userID uuid.UUID) (*BudgetAllocation, error)
	Upsert(allocation *BudgetAllocation) (*BudgetAllocation, error)
}
