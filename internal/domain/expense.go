package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is the closed set of expense categories. Free-form strings from
// the wire are parsed at the boundary; everything past the handler layer
// carries a validated Category.
type Category string

const (
	CategoryNeeds       Category = "needs"
	CategoryWants       Category = "wants"
	CategorySavings     Category = "savings"
	CategoryInvestments Category = "investments"
)

// Categories lists every category in declaration order. Aggregations that
// need a stable category ordering iterate this slice.
var Categories = []Category{CategoryNeeds, CategoryWants, CategorySavings, CategoryInvestments}

// ParseCategory converts a wire string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryNeeds, CategoryWants, CategorySavings, CategoryInvestments:
		return true
	}
	return false
}

// GoalEligible reports whether expenses in this category may be attached
// to a savings goal.
func (c Category) GoalEligible() bool {
	return c == CategorySavings || c == CategoryInvestments
}

// Expense is a single dated money movement. Date carries no time
// component; it is always midnight UTC. GoalID is a weak reference:
// deleting the goal clears it but never deletes the expense.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Date        time.Time       `json:"date"`
	GoalID      *uuid.UUID      `json:"goalId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	GetByID(userID uuid.UUID, id uuid.UUID) (*Expense, error)
	GetByUser(userID uuid.UUID) ([]*Expense, error)
	GetByGoal(userID uuid.UUID, goalID uuid.UUID) ([]*Expense, error)
	Update(expense *Expense) (*Expense, error)
	Delete(userID uuid.UUID, id uuid.UUID) error
	// ClearGoalRef detaches a single expense from its goal. Idempotent.
	ClearGoalRef(userID uuid.UUID, id uuid.UUID) error
	// ClearGoalRefs detaches every expense referencing the goal. Idempotent.
	ClearGoalRefs(userID uuid.UUID, goalID uuid.UUID) error
}
