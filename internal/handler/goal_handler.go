package handler

import (
	"errors"
	"net/http"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/centsible/centsible-backend/internal/middleware"
	"github.com/centsible/centsible-backend/internal/service"
	"github.com/centsible/centsible-backend/internal/util"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService *service.SavingsGoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.SavingsGoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GoalRequest represents the create/update request body
type GoalRequest struct {
	Name         string `json:"name"`
	TargetAmount string `json:"targetAmount"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
}

// AttachExpenseRequest represents the attach request body
type AttachExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

// GoalResponse represents a savings goal in API responses
type GoalResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TargetAmount string `json:"targetAmount"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	CreatedAt    string `json:"createdAt"`
}

// ProgressPointResponse is one step of the cumulative savings series
type ProgressPointResponse struct {
	Date       string `json:"date"`
	Cumulative string `json:"cumulative"`
}

// GoalProgressResponse represents a goal with its derived progress
type GoalProgressResponse struct {
	Goal        GoalResponse            `json:"goal"`
	Total       string                  `json:"total"`
	ProgressPct string                  `json:"progressPct"`
	Points      []ProgressPointResponse `json:"points"`
}

// GoalListResponse represents the goal listing
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// CreateGoal handles POST /api/v1/goals
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	input, validationErr := h.parseGoalRequest(c)
	if input == nil {
		return validationErr
	}

	goal, err := h.goalService.Create(userID, *input)
	if err != nil {
		return h.mapGoalError(c, err, userID)
	}

	return c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// GetGoals handles GET /api/v1/goals
func (h *GoalHandler) GetGoals(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	goals, err := h.goalService.GetByUser(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list savings goals")
		return NewInternalError(c, "Failed to list savings goals")
	}

	responses := make([]GoalResponse, len(goals))
	for i, goal := range goals {
		responses[i] = toGoalResponse(goal)
	}

	return c.JSON(http.StatusOK, GoalListResponse{Goals: responses})
}

// GetGoal handles GET /api/v1/goals/:id and returns the goal with its
// derived progress report
func (h *GoalHandler) GetGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	progress, err := h.goalService.Progress(userID, id)
	if err != nil {
		return h.mapGoalError(c, err, userID)
	}

	return c.JSON(http.StatusOK, toGoalProgressResponse(progress))
}

// UpdateGoal handles PUT /api/v1/goals/:id
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	input, validationErr := h.parseGoalRequest(c)
	if input == nil {
		return validationErr
	}

	goal, err := h.goalService.Update(userID, id, *input)
	if err != nil {
		return h.mapGoalError(c, err, userID)
	}

	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// DeleteGoal handles DELETE /api/v1/goals/:id
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	if err := h.goalService.Delete(userID, id); err != nil {
		return h.mapGoalError(c, err, userID)
	}

	return c.NoContent(http.StatusNoContent)
}

// AttachExpense handles POST /api/v1/goals/:id/attach
func (h *GoalHandler) AttachExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req AttachExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	expenseID, err := uuid.Parse(req.ExpenseID)
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", []ValidationError{
			{Field: "expenseId", Message: "Must be a valid expense ID"},
		})
	}

	expense, err := h.goalService.AttachExpense(userID, expenseID, goalID)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		return h.mapGoalError(c, err, userID)
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", goalID.String()).Str("expense_id", expenseID.String()).Msg("Expense attached to goal")
	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

func (h *GoalHandler) parseGoalRequest(c echo.Context) (*service.GoalInput, error) {
	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	targetAmount, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		return nil, NewValidationError(c, "Invalid target amount format", []ValidationError{
			{Field: "targetAmount", Message: "Must be a valid decimal number"},
		})
	}

	startDate, err := util.ParseDate(req.StartDate)
	if err != nil {
		return nil, NewValidationError(c, "Invalid start date", []ValidationError{
			{Field: "startDate", Message: "Must be a YYYY-MM-DD date"},
		})
	}

	endDate, err := util.ParseDate(req.EndDate)
	if err != nil {
		return nil, NewValidationError(c, "Invalid end date", []ValidationError{
			{Field: "endDate", Message: "Must be a YYYY-MM-DD date"},
		})
	}

	return &service.GoalInput{
		Name:         req.Name,
		TargetAmount: targetAmount,
		StartDate:    startDate,
		EndDate:      endDate,
	}, nil
}

// mapGoalError converts goal service errors into API responses
func (h *GoalHandler) mapGoalError(c echo.Context, err error, userID uuid.UUID) error {
	var mismatch *domain.GoalDateMismatchError
	switch {
	case errors.Is(err, domain.ErrGoalNotFound):
		return NewNotFoundError(c, "Savings goal not found")
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, "Invalid goal details", []ValidationError{
			{Field: "name", Message: "Is required and must be at most 255 characters"},
		})
	case errors.Is(err, domain.ErrInvalidGoalWindow):
		return NewValidationError(c, "Invalid goal window", []ValidationError{
			{Field: "targetAmount", Message: "Target amount must be positive"},
			{Field: "startDate", Message: "Start date must not be after end date"},
		})
	case errors.Is(err, domain.ErrCategoryNotGoalEligible):
		return NewValidationError(c, "Expense cannot be attached to a goal", []ValidationError{
			{Field: "category", Message: "Only savings or investment expenses can be attached to a goal"},
		})
	case errors.As(err, &mismatch):
		return NewValidationError(c, "Expense date is outside the goal window", []ValidationError{
			{Field: "date", Message: mismatch.Error()},
		})
	}

	log.Error().Err(err).Str("user_id", userID.String()).Msg("Goal operation failed")
	return NewInternalError(c, "Failed to save savings goal")
}

func toGoalResponse(goal *domain.SavingsGoal) GoalResponse {
	return GoalResponse{
		ID:           goal.ID.String(),
		Name:         goal.Name,
		TargetAmount: goal.TargetAmount.StringFixed(2),
		StartDate:    util.FormatDate(goal.StartDate),
		EndDate:      util.FormatDate(goal.EndDate),
		CreatedAt:    goal.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toGoalProgressResponse(progress *domain.GoalProgress) GoalProgressResponse {
	points := make([]ProgressPointResponse, len(progress.Points))
	for i, point := range progress.Points {
		points[i] = ProgressPointResponse{
			Date:       util.FormatDate(point.Date),
			Cumulative: point.Cumulative.StringFixed(2),
		}
	}
	return GoalProgressResponse{
		Goal:        toGoalResponse(progress.Goal),
		Total:       progress.Total.StringFixed(2),
		ProgressPct: progress.ProgressPct.StringFixed(2),
		Points:      points,
	}
}
