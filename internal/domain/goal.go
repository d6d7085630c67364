package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsGoal is a named target amount with an inclusive date window.
// Progress is always derived from the expenses referencing the goal,
// never stored. There is no "completed" state; reaching 100% is a
// display fact.
type SavingsGoal struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Contains reports whether date lies inside the goal's inclusive window.
func (g *SavingsGoal) Contains(date time.Time) bool {
	return !date.Before(g.StartDate) && !date.After(g.EndDate)
}

// ProgressPoint is one step of a goal's cumulative savings series.
type ProgressPoint struct {
	Date       time.Time       `json:"date"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// GoalProgress is the derived progress report for a goal.
type GoalProgress struct {
	Goal        *SavingsGoal    `json:"goal"`
	Total       decimal.Decimal `json:"total"`
	ProgressPct decimal.Decimal `json:"progressPct"`
	Points      []ProgressPoint `json:"points"`
}

type SavingsGoalRepository interface {
	Create(goal *SavingsGoal) (*SavingsGoal, error)
	GetByID(userID uuid.UUID, id uuid.UUID) (*SavingsGoal, error)
	GetByUser(userID uuid.UUID) ([]*SavingsGoal, error)
	Update(goal *SavingsGoal) (*SavingsGoal, error)
	Delete(userID uuid.UUID, id uuid.UUID) error
}
