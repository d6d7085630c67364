package domain

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors
var (
	ErrNotFound                = errors.New("resource not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrExpenseNotFound         = errors.New("expense not found")
	ErrGoalNotFound            = errors.New("savings goal not found")
	ErrSessionNotFound         = errors.New("session not found")
	ErrEmailAlreadyRegistered  = errors.New("email already registered")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidAmount           = errors.New("amount must be zero or positive")
	ErrInvalidCategory         = errors.New("invalid expense category")
	ErrAllocationExceedsLimit  = errors.New("allocation percentages exceed 100%")
	ErrInvalidGoalWindow       = errors.New("invalid savings goal window")
	ErrCategoryNotGoalEligible = errors.New("only savings or investment expenses can be attached to a goal")
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MaxGoalNameLength    = 255
)

// GoalDateMismatchError reports an expense date outside a goal's window.
// It carries the valid window so callers can surface a precise message.
type GoalDateMismatchError struct {
	StartDate time.Time
	EndDate   time.Time
}

func (e *GoalDateMismatchError) Error() string {
	return fmt.Sprintf("expense date must fall between %s and %s",
		e.StartDate.Format("2006-01-02"), e.EndDate.Format("2006-01-02"))
}
