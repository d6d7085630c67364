package postgres

import (
	"context"
	"errors"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BudgetAllocationRepository implements domain.BudgetAllocationRepository using PostgreSQL
type BudgetAllocationRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetAllocationRepository creates a new BudgetAllocationRepository
func NewBudgetAllocationRepository(pool *pgxpool.Pool) *BudgetAllocationRepository {
	return &BudgetAllocationRepository{pool: pool}
}

// Get retrieves a user's stored allocation. Returns domain.ErrNotFound when
// the user has never saved one.
func (r *BudgetAllocationRepository) Get(userID uuid.UUID) (*domain.BudgetAllocation, error) {
	ctx := context.Background()

	query := `
		SELECT user_id, needs, wants, savings, investments, updated_at
		FROM budget_allocations
		WHERE user_id = $1
	`

	var a domain.BudgetAllocation
	err := r.pool.QueryRow(ctx, query, userID).
		Scan(&a.UserID, &a.Needs, &a.Wants, &a.Savings, &a.Investments, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &a, nil
}

// Upsert replaces a user's allocation in a single write
func (r *BudgetAllocationRepository) Upsert(allocation *domain.BudgetAllocation) (*domain.BudgetAllocation, error) {
	ctx := context.Background()

	query := `
		INSERT INTO budget_allocations (user_id, needs, wants, savings, investments)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET needs = EXCLUDED.needs,
		    wants = EXCLUDED.wants,
		    savings = EXCLUDED.savings,
		    investments = EXCLUDED.investments,
		    updated_at = now()
		RETURNING user_id, needs, wants, savings, investments, updated_at
	`

	var a domain.BudgetAllocation
	err := r.pool.QueryRow(ctx, query,
		allocation.UserID, allocation.Needs, allocation.Wants, allocation.Savings, allocation.Investments).
		Scan(&a.UserID, &a.Needs, &a.Wants, &a.Savings, &a.Investments, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &a, nil
}
