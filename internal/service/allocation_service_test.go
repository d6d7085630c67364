package service

import (
	"testing"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/centsible/centsible-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetAllocationService_Get_ReturnsDefaultWhenUnset(t *testing.T) {
	allocationRepo := testutil.NewMockBudgetAllocationRepository()
	svc := NewBudgetAllocationService(allocationRepo)
	userID := uuid.New()

	allocation, err := svc.Get(userID)

	require.NoError(t, err)
	assert.Equal(t, "50.00", allocation.Needs.StringFixed(2))
	assert.Equal(t, "30.00", allocation.Wants.StringFixed(2))
	assert.Equal(t, "20.00", allocation.Savings.StringFixed(2))
	assert.Equal(t, "0.00", allocation.Investments.StringFixed(2))
}

func TestBudgetAllocationService_Set_AcceptsSumOfExactlyHundred(t *testing.T) {
	allocationRepo := testutil.NewMockBudgetAllocationRepository()
	svc := NewBudgetAllocationService(allocationRepo)
	userID := uuid.New()

	allocation, err := svc.Set(userID,
		decimal.NewFromInt(40), decimal.NewFromInt(30),
		decimal.NewFromInt(20), decimal.NewFromInt(10))

	require.NoError(t, err)
	assert.Equal(t, "100.00", allocation.Sum().StringFixed(2))
}

func TestBudgetAllocationService_Set_AcceptsSumBelowHundred(t *testing.T) {
	allocationRepo := testutil.NewMockBudgetAllocationRepository()
	svc := NewBudgetAllocationService(allocationRepo)
	userID := uuid.New()

	allocation, err := svc.Set(userID,
		decimal.NewFromInt(40), decimal.NewFromInt(30),
		decimal.NewFromInt(20), decimal.Zero)

	require.NoError(t, err)
	assert.Equal(t, "90.00", allocation.Sum().StringFixed(2))
}

func TestBudgetAllocationService_Set_RejectsSumOverHundred(t *testing.T) {
	allocationRepo := testutil.NewMockBudgetAllocationRepository()
	svc := NewBudgetAllocationService(allocationRepo)
	userID := uuid.New()

	_, err := svc.Set(userID,
		decimal.NewFromInt(50), decimal.NewFromInt(40),
		decimal.NewFromInt(30), decimal.NewFromInt(10))

	assert.ErrorIs(t, err, domain.ErrAllocationExceedsLimit)
}

func TestBudgetAllocationService_Set_RejectionLeavesStoredAllocationUntouched(t *testing.T) {
	allocationRepo := testutil.NewMockBudgetAllocationRepository()
	svc := NewBudgetAllocationService(allocationRepo)
	userID := uuid.New()

	_, err := svc.Set(userID,
		decimal.NewFromInt(50), decimal.NewFromInt(30),
		decimal.NewFromInt(20), decimal.Zero)
	require.NoError(t, err)

	_, err = svc.Set(userID,
		decimal.NewFromInt(60), decimal.NewFromInt(60),
		decimal.NewFromInt(10), decimal.NewFromInt(10))
	require.ErrorIs(t, err, domain.ErrAllocationExceedsLimit)

	allocation, err := svc.Get(userID)
	require.NoError(t, err)
	assert.Equal(t, "50.00", allocation.Needs.StringFixed(2))
	assert.Equal(t, "30.00", allocation.Wants.StringFixed(2))
	assert.Equal(t, "20.00", allocation.Savings.StringFixed(2))
	assert.Equal(t, "0.00", allocation.Investments.StringFixed(2))
}

func TestBudgetAllocationService_Set_RoundsInputsBeforeSumming(t *testing.T) {
	allocationRepo := testutil.NewMockBudgetAllocationRepository()
	svc := NewBudgetAllocationService(allocationRepo)
	userID := uuid.New()

	// 33.333... each rounds to 33.33; the sum is 99.99, not over 100
	third := decimal.NewFromInt(100).Div(decimal.NewFromInt(3))
	allocation, err := svc.Set(userID, third, third, third, decimal.Zero)

	require.NoError(t, err)
	assert.Equal(t, "33.33", allocation.Needs.StringFixed(2))
	assert.Equal(t, "99.99", allocation.Sum().StringFixed(2))
}

func TestBudgetAllocationService_SetFromOnboarding_DerivesInvestments(t *testing.T) {
	allocationRepo := testutil.NewMockBudgetAllocationRepository()
	svc := NewBudgetAllocationService(allocationRepo)
	userID := uuid.New()

	allocation, err := svc.SetFromOnboarding(userID,
		decimal.NewFromInt(50), decimal.NewFromInt(30), decimal.NewFromInt(15))

	require.NoError(t, err)
	assert.Equal(t, "5.00", allocation.Investments.StringFixed(2))
	assert.Equal(t, "100.00", allocation.Sum().StringFixed(2))
}

func TestBudgetAllocationService_SetFromOnboarding_RejectsInputsOverHundred(t *testing.T) {
	allocationRepo := testutil.NewMockBudgetAllocationRepository()
	svc := NewBudgetAllocationService(allocationRepo)
	userID := uuid.New()

	_, err := svc.SetFromOnboarding(userID,
		decimal.NewFromInt(60), decimal.NewFromInt(30), decimal.NewFromInt(20))

	assert.ErrorIs(t, err, domain.ErrAllocationExceedsLimit)
}
