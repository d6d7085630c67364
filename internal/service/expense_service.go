package service

import (
	"strings"
	"time"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ExpenseService handles expense CRUD and enforces the goal-reference
// invariant at write time
type ExpenseService struct {
	expenseRepo domain.ExpenseRepository
	goalRepo    domain.SavingsGoalRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository, goalRepo domain.SavingsGoalRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		goalRepo:    goalRepo,
	}
}

// ExpenseInput carries the mutable fields of an expense
type ExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	Category    domain.Category
	Date        time.Time
	GoalID      *uuid.UUID
}

// Create validates and stores a new expense
func (s *ExpenseService) Create(userID uuid.UUID, input ExpenseInput) (*domain.Expense, error) {
	if err := s.validate(userID, &input); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.Create(&domain.Expense{
		UserID:      userID,
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
		GoalID:      input.GoalID,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create expense")
		return nil, err
	}

	return expense, nil
}

// GetByUser lists all expenses for a user
func (s *ExpenseService) GetByUser(userID uuid.UUID) ([]*domain.Expense, error) {
	return s.expenseRepo.GetByUser(userID)
}

// Update replaces an expense's fields. The goal-reference invariant is
// re-checked against the updated category and date, so an edit can never
// leave an ineligible or out-of-window expense attached to a goal.
func (s *ExpenseService) Update(userID uuid.UUID, id uuid.UUID, input ExpenseInput) (*domain.Expense, error) {
	existing, err := s.expenseRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.validate(userID, &input); err != nil {
		return nil, err
	}

	existing.Description = input.Description
	existing.Amount = input.Amount
	existing.Category = input.Category
	existing.Date = input.Date
	existing.GoalID = input.GoalID

	return s.expenseRepo.Update(existing)
}

// Delete removes an expense
func (s *ExpenseService) Delete(userID uuid.UUID, id uuid.UUID) error {
	return s.expenseRepo.Delete(userID, id)
}

// validate checks the field-level rules and, when a goal is referenced,
// the ownership/eligibility/window invariant.
func (s *ExpenseService) validate(userID uuid.UUID, input *ExpenseInput) error {
	input.Description = strings.TrimSpace(input.Description)
	if input.Description == "" || len(input.Description) > domain.MaxDescriptionLength {
		return domain.ErrInvalidInput
	}
	if input.Amount.IsNegative() {
		return domain.ErrInvalidAmount
	}
	if !input.Category.Valid() {
		return domain.ErrInvalidCategory
	}

	if input.GoalID == nil {
		return nil
	}

	// Goal must belong to the same user; a foreign goal id is
	// indistinguishable from a missing one.
	goal, err := s.goalRepo.GetByID(userID, *input.GoalID)
	if err != nil {
		return err
	}
	if !input.Category.GoalEligible() {
		return domain.ErrCategoryNotGoalEligible
	}
	if !goal.Contains(input.Date) {
		return &domain.GoalDateMismatchError{StartDate: goal.StartDate, EndDate: goal.EndDate}
	}

	return nil
}
