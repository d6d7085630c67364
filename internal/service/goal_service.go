package service

import (
	"sort"
	"strings"
	"time"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SavingsGoalService manages the goal lifecycle and goal/expense
// associations. A goal has no stored "completed" state; reaching the
// target is a derived display fact.
type SavingsGoalService struct {
	goalRepo    domain.SavingsGoalRepository
	expenseRepo domain.ExpenseRepository
}

// NewSavingsGoalService creates a new SavingsGoalService
func NewSavingsGoalService(goalRepo domain.SavingsGoalRepository, expenseRepo domain.ExpenseRepository) *SavingsGoalService {
	return &SavingsGoalService{
		goalRepo:    goalRepo,
		expenseRepo: expenseRepo,
	}
}

// GoalInput carries the mutable fields of a savings goal
type GoalInput struct {
	Name         string
	TargetAmount decimal.Decimal
	StartDate    time.Time
	EndDate      time.Time
}

func (in *GoalInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || len(in.Name) > domain.MaxGoalNameLength {
		return domain.ErrInvalidInput
	}
	if !in.TargetAmount.IsPositive() {
		return domain.ErrInvalidGoalWindow
	}
	if in.EndDate.Before(in.StartDate) {
		return domain.ErrInvalidGoalWindow
	}
	return nil
}

// Create adds a new goal to the user's goal list
func (s *SavingsGoalService) Create(userID uuid.UUID, input GoalInput) (*domain.SavingsGoal, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	goal, err := s.goalRepo.Create(&domain.SavingsGoal{
		UserID:       userID,
		Name:         input.Name,
		TargetAmount: input.TargetAmount,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create savings goal")
		return nil, err
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", goal.ID.String()).Msg("Savings goal created")
	return goal, nil
}

// GetByUser lists all goals for a user
func (s *SavingsGoalService) GetByUser(userID uuid.UUID) ([]*domain.SavingsGoal, error) {
	return s.goalRepo.GetByUser(userID)
}

// Update replaces a goal's fields. When the date window changed, every
// expense referencing the goal is re-validated before returning: any
// expense now outside the new window has its reference cleared. The
// expense itself is never deleted or recategorized.
func (s *SavingsGoalService) Update(userID uuid.UUID, goalID uuid.UUID, input GoalInput) (*domain.SavingsGoal, error) {
	existing, err := s.goalRepo.GetByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	windowChanged := !input.StartDate.Equal(existing.StartDate) || !input.EndDate.Equal(existing.EndDate)

	existing.Name = input.Name
	existing.TargetAmount = input.TargetAmount
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate

	updated, err := s.goalRepo.Update(existing)
	if err != nil {
		return nil, err
	}

	if windowChanged {
		if err := s.detachOutsideWindow(userID, updated); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// Delete detaches every referencing expense, then removes the goal.
// Detaching first keeps a mid-operation failure from ever leaving an
// expense pointing at a nonexistent goal; re-running the detach is
// harmless.
func (s *SavingsGoalService) Delete(userID uuid.UUID, goalID uuid.UUID) error {
	if _, err := s.goalRepo.GetByID(userID, goalID); err != nil {
		return err
	}

	if err := s.expenseRepo.ClearGoalRefs(userID, goalID); err != nil {
		log.Error().Err(err).Str("goal_id", goalID.String()).Msg("Failed to detach expenses from goal")
		return err
	}

	if err := s.goalRepo.Delete(userID, goalID); err != nil {
		return err
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", goalID.String()).Msg("Savings goal deleted")
	return nil
}

// AttachExpense associates an expense with a goal. Only savings and
// investment expenses qualify, and the expense date must lie inside the
// goal window; on failure the expense is left unattached.
func (s *SavingsGoalService) AttachExpense(userID uuid.UUID, expenseID uuid.UUID, goalID uuid.UUID) (*domain.Expense, error) {
	expense, err := s.expenseRepo.GetByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	goal, err := s.goalRepo.GetByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if !expense.Category.GoalEligible() {
		return nil, domain.ErrCategoryNotGoalEligible
	}
	if !goal.Contains(expense.Date) {
		return nil, &domain.GoalDateMismatchError{StartDate: goal.StartDate, EndDate: goal.EndDate}
	}

	expense.GoalID = &goal.ID
	return s.expenseRepo.Update(expense)
}

// Progress derives the progress report for a goal: the cumulative savings
// series sorted by date ascending and the percentage toward the target.
// A zero target reports 0% rather than failing.
func (s *SavingsGoalService) Progress(userID uuid.UUID, goalID uuid.UUID) (*domain.GoalProgress, error) {
	goal, err := s.goalRepo.GetByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.GetByGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.Before(expenses[j].Date)
	})

	points := make([]domain.ProgressPoint, 0, len(expenses))
	cumulative := decimal.Zero
	for _, expense := range expenses {
		cumulative = cumulative.Add(expense.Amount)
		points = append(points, domain.ProgressPoint{
			Date:       expense.Date,
			Cumulative: cumulative,
		})
	}

	pct := decimal.Zero
	if goal.TargetAmount.IsPositive() {
		pct = cumulative.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100))
	}

	return &domain.GoalProgress{
		Goal:        goal,
		Total:       cumulative,
		ProgressPct: pct,
		Points:      points,
	}, nil
}

func (s *SavingsGoalService) detachOutsideWindow(userID uuid.UUID, goal *domain.SavingsGoal) error {
	expenses, err := s.expenseRepo.GetByGoal(userID, goal.ID)
	if err != nil {
		return err
	}

	for _, expense := range expenses {
		if goal.Contains(expense.Date) {
			continue
		}
		if err := s.expenseRepo.ClearGoalRef(userID, expense.ID); err != nil {
			return err
		}
		log.Debug().
			Str("goal_id", goal.ID.String()).
			Str("expense_id", expense.ID.String()).
			Msg("Detached expense outside new goal window")
	}
	return nil
}
