package handler

import (
	"errors"
	"net/http"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/centsible/centsible-backend/internal/middleware"
	"github.com/centsible/centsible-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget allocation HTTP requests
type BudgetHandler struct {
	allocationService *service.BudgetAllocationService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(allocationService *service.BudgetAllocationService) *BudgetHandler {
	return &BudgetHandler{allocationService: allocationService}
}

// SetAllocationRequest represents the full four-way update request body
type SetAllocationRequest struct {
	Needs       string `json:"needs"`
	Wants       string `json:"wants"`
	Savings     string `json:"savings"`
	Investments string `json:"investments"`
}

// OnboardingAllocationRequest represents the three-input onboarding
// request body; the investments share is derived server-side.
type OnboardingAllocationRequest struct {
	Needs   string `json:"needs"`
	Wants   string `json:"wants"`
	Savings string `json:"savings"`
}

// AllocationResponse represents a budget allocation in API responses
type AllocationResponse struct {
	Needs       string `json:"needs"`
	Wants       string `json:"wants"`
	Savings     string `json:"savings"`
	Investments string `json:"investments"`
	Total       string `json:"total"`
}

// GetAllocation handles GET /api/v1/budget
func (h *BudgetHandler) GetAllocation(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	allocation, err := h.allocationService.Get(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get budget allocation")
		return NewInternalError(c, "Failed to get budget allocation")
	}

	return c.JSON(http.StatusOK, toAllocationResponse(allocation))
}

// SetAllocation handles PUT /api/v1/budget
func (h *BudgetHandler) SetAllocation(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req SetAllocationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	values, validationErr := parsePercentages(c, map[string]string{
		"needs":       req.Needs,
		"wants":       req.Wants,
		"savings":     req.Savings,
		"investments": req.Investments,
	})
	if values == nil {
		return validationErr
	}

	allocation, err := h.allocationService.Set(userID,
		values["needs"], values["wants"], values["savings"], values["investments"])
	if err != nil {
		if errors.Is(err, domain.ErrAllocationExceedsLimit) {
			return NewValidationError(c, "The total percentages cannot exceed 100%", nil)
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to set budget allocation")
		return NewInternalError(c, "Failed to set budget allocation")
	}

	return c.JSON(http.StatusOK, toAllocationResponse(allocation))
}

// SetOnboardingAllocation handles PUT /api/v1/budget/onboarding
func (h *BudgetHandler) SetOnboardingAllocation(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req OnboardingAllocationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	values, validationErr := parsePercentages(c, map[string]string{
		"needs":   req.Needs,
		"wants":   req.Wants,
		"savings": req.Savings,
	})
	if values == nil {
		return validationErr
	}

	allocation, err := h.allocationService.SetFromOnboarding(userID,
		values["needs"], values["wants"], values["savings"])
	if err != nil {
		if errors.Is(err, domain.ErrAllocationExceedsLimit) {
			return NewValidationError(c, "The total percentages cannot exceed 100%", nil)
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to set onboarding allocation")
		return NewInternalError(c, "Failed to set budget allocation")
	}

	return c.JSON(http.StatusOK, toAllocationResponse(allocation))
}

// parsePercentages converts the wire strings into decimals, range-checking
// each to [0,100]. The sum invariant belongs to the service; only the
// per-field range is checked here.
func parsePercentages(c echo.Context, fields map[string]string) (map[string]decimal.Decimal, error) {
	hundred := decimal.NewFromInt(100)
	values := make(map[string]decimal.Decimal, len(fields))
	for field, raw := range fields {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, NewValidationError(c, "Invalid percentage format", []ValidationError{
				{Field: field, Message: "Must be a valid decimal number"},
			})
		}
		if value.IsNegative() || value.GreaterThan(hundred) {
			return nil, NewValidationError(c, "Percentage out of range", []ValidationError{
				{Field: field, Message: "Must be between 0 and 100"},
			})
		}
		values[field] = value
	}
	return values, nil
}

func toAllocationResponse(allocation *domain.BudgetAllocation) AllocationResponse {
	return AllocationResponse{
		Needs:       allocation.Needs.StringFixed(2),
		Wants:       allocation.Wants.StringFixed(2),
		Savings:     allocation.Savings.StringFixed(2),
		Investments: allocation.Investments.StringFixed(2),
		Total:       allocation.Sum().StringFixed(2),
	}
}
