package service

import (
	"errors"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// allocationLimit is the maximum the four percentages may sum to.
var allocationLimit = decimal.NewFromInt(100)

// BudgetAllocationService enforces the percentage-sum invariant and
// persists allocation updates
type BudgetAllocationService struct {
	allocationRepo domain.BudgetAllocationRepository
}

// NewBudgetAllocationService creates a new BudgetAllocationService
func NewBudgetAllocationService(allocationRepo domain.BudgetAllocationRepository) *BudgetAllocationService {
	return &BudgetAllocationService{allocationRepo: allocationRepo}
}

// Get returns the user's allocation, falling back to the default split for
// users who have never saved one
func (s *BudgetAllocationService) Get(userID uuid.UUID) (*domain.BudgetAllocation, error) {
	allocation, err := s.allocationRepo.Get(userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DefaultAllocation(userID), nil
		}
		return nil, err
	}
	return allocation, nil
}

// Set validates and applies a four-way allocation. Each input is rounded to
// two decimal places before summing so float noise from the client cannot
// cause a spurious rejection. A sum over 100.00 is rejected and the stored
// allocation is left untouched.
func (s *BudgetAllocationService) Set(userID uuid.UUID, needs, wants, savings, investments decimal.Decimal) (*domain.BudgetAllocation, error) {
	allocation := &domain.BudgetAllocation{
		UserID:      userID,
		Needs:       needs.Round(2),
		Wants:       wants.Round(2),
		Savings:     savings.Round(2),
		Investments: investments.Round(2),
	}

	if allocation.Sum().GreaterThan(allocationLimit) {
		return nil, domain.ErrAllocationExceedsLimit
	}

	updated, err := s.allocationRepo.Upsert(allocation)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to save budget allocation")
		return nil, err
	}

	log.Info().Str("user_id", userID.String()).Str("total", updated.Sum().StringFixed(2)).Msg("Budget allocation updated")
	return updated, nil
}

// SetFromOnboarding applies the three-input onboarding variant: the user
// supplies needs, wants and savings, and the investments share is derived
// as the remainder up to 100. A negative remainder means the three inputs
// already exceed 100 and the update is rejected.
func (s *BudgetAllocationService) SetFromOnboarding(userID uuid.UUID, needs, wants, savings decimal.Decimal) (*domain.BudgetAllocation, error) {
	needs = needs.Round(2)
	wants = wants.Round(2)
	savings = savings.Round(2)

	investments := allocationLimit.Sub(needs.Add(wants).Add(savings)).Round(2)
	if investments.IsNegative() {
		return nil, domain.ErrAllocationExceedsLimit
	}

	return s.Set(userID, needs, wants, savings, investments)
}
