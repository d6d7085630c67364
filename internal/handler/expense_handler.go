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

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the create/update request body
type ExpenseRequest struct {
	Description string  `json:"description"`
	Amount      string  `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	GoalID      *string `json:"goalId,omitempty"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      string  `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	GoalID      *string `json:"goalId,omitempty"`
}

// ExpenseListResponse represents the expense listing with its grand total
type ExpenseListResponse struct {
	Expenses      []ExpenseResponse `json:"expenses"`
	TotalExpenses string            `json:"totalExpenses"`
}

// CreateExpense handles POST /api/v1/expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	input, validationErr := h.parseExpenseRequest(c)
	if input == nil {
		return validationErr
	}

	expense, err := h.expenseService.Create(userID, *input)
	if err != nil {
		return h.mapExpenseError(c, err, userID)
	}

	log.Info().Str("user_id", userID.String()).Str("expense_id", expense.ID.String()).Msg("Expense created")
	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// GetExpenses handles GET /api/v1/expenses
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	expenses, err := h.expenseService.GetByUser(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list expenses")
		return NewInternalError(c, "Failed to list expenses")
	}

	total := decimal.Zero
	responses := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		responses[i] = toExpenseResponse(expense)
		total = total.Add(expense.Amount)
	}

	return c.JSON(http.StatusOK, ExpenseListResponse{
		Expenses:      responses,
		TotalExpenses: total.StringFixed(2),
	})
}

// UpdateExpense handles PUT /api/v1/expenses/:id
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	input, validationErr := h.parseExpenseRequest(c)
	if input == nil {
		return validationErr
	}

	expense, err := h.expenseService.Update(userID, id, *input)
	if err != nil {
		return h.mapExpenseError(c, err, userID)
	}

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// DeleteExpense handles DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	if err := h.expenseService.Delete(userID, id); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to delete expense")
		return NewInternalError(c, "Failed to delete expense")
	}

	return c.NoContent(http.StatusNoContent)
}

// parseExpenseRequest binds and converts the wire request into a service
// input, returning a ready-to-send validation response on bad input.
func (h *ExpenseHandler) parseExpenseRequest(c echo.Context) (*service.ExpenseInput, error) {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, NewValidationError(c, "Invalid amount format", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, NewValidationError(c, "Invalid category", []ValidationError{
			{Field: "category", Message: "Must be one of: needs, wants, savings, investments"},
		})
	}

	date, err := util.ParseDate(req.Date)
	if err != nil {
		return nil, NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be a YYYY-MM-DD date"},
		})
	}

	input := &service.ExpenseInput{
		Description: req.Description,
		Amount:      amount,
		Category:    category,
		Date:        date,
	}

	if req.GoalID != nil && *req.GoalID != "" {
		goalID, err := uuid.Parse(*req.GoalID)
		if err != nil {
			return nil, NewValidationError(c, "Invalid goal ID", []ValidationError{
				{Field: "goalId", Message: "Must be a valid goal ID"},
			})
		}
		input.GoalID = &goalID
	}

	return input, nil
}

// mapExpenseError converts service errors into API responses
func (h *ExpenseHandler) mapExpenseError(c echo.Context, err error, userID uuid.UUID) error {
	var mismatch *domain.GoalDateMismatchError
	switch {
	case errors.Is(err, domain.ErrExpenseNotFound):
		return NewNotFoundError(c, "Expense not found")
	case errors.Is(err, domain.ErrGoalNotFound):
		return NewNotFoundError(c, "Savings goal not found")
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, "Invalid expense details", []ValidationError{
			{Field: "description", Message: "Is required and must be at most 255 characters"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Amount must be zero or positive"},
		})
	case errors.Is(err, domain.ErrInvalidCategory):
		return NewValidationError(c, "Invalid category", []ValidationError{
			{Field: "category", Message: "Must be one of: needs, wants, savings, investments"},
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

	log.Error().Err(err).Str("user_id", userID.String()).Msg("Expense operation failed")
	return NewInternalError(c, "Failed to save expense")
}

func toExpenseResponse(expense *domain.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          expense.ID.String(),
		Description: expense.Description,
		Amount:      expense.Amount.StringFixed(2),
		Category:    string(expense.Category),
		Date:        util.FormatDate(expense.Date),
	}
	if expense.GoalID != nil {
		goalID := expense.GoalID.String()
		resp.GoalID = &goalID
	}
	return resp
}
