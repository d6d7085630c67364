package postgres

import (
	"context"
	"errors"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `id, user_id, description, amount, category, date, goal_id, created_at, updated_at`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category,
		&e.Date, &e.GoalID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new expense
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()

	query := `
		INSERT INTO expenses (id, user_id, description, amount, category, date, goal_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + expenseColumns

	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}

	return scanExpense(r.pool.QueryRow(ctx, query,
		expense.ID, expense.UserID, expense.Description, expense.Amount,
		expense.Category, expense.Date, expense.GoalID))
}

// GetByID retrieves an expense scoped by user
func (r *ExpenseRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Expense, error) {
	ctx := context.Background()

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 AND id = $2`

	expense, err := scanExpense(r.pool.QueryRow(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// GetByUser retrieves all expenses for a user, newest date first
func (r *ExpenseRepository) GetByUser(userID uuid.UUID) ([]*domain.Expense, error) {
	ctx := context.Background()

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 ORDER BY date DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// GetByGoal retrieves all expenses referencing a goal, ordered by date ascending
func (r *ExpenseRepository) GetByGoal(userID uuid.UUID, goalID uuid.UUID) ([]*domain.Expense, error) {
	ctx := context.Background()

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 AND goal_id = $2 ORDER BY date ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// Update replaces an expense's mutable fields
func (r *ExpenseRepository) Update(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()

	query := `
		UPDATE expenses
		SET description = $3, amount = $4, category = $5, date = $6, goal_id = $7, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING ` + expenseColumns

	updated, err := scanExpense(r.pool.QueryRow(ctx, query,
		expense.UserID, expense.ID, expense.Description, expense.Amount,
		expense.Category, expense.Date, expense.GoalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes an expense scoped by user
func (r *ExpenseRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// ClearGoalRef detaches a single expense from its goal
func (r *ExpenseRepository) ClearGoalRef(userID uuid.UUID, id uuid.UUID) error {
	ctx := context.Background()

	_, err := r.pool.Exec(ctx,
		`UPDATE expenses SET goal_id = NULL, updated_at = now() WHERE user_id = $1 AND id = $2`,
		userID, id)
	return err
}

// ClearGoalRefs detaches every expense referencing the goal
func (r *ExpenseRepository) ClearGoalRefs(userID uuid.UUID, goalID uuid.UUID) error {
	ctx := context.Background()

	_, err := r.pool.Exec(ctx,
		`UPDATE expenses SET goal_id = NULL, updated_at = now() WHERE user_id = $1 AND goal_id = $2`,
		userID, goalID)
	return err
}

func collectExpenses(rows pgx.Rows) ([]*domain.Expense, error) {
	expenses := []*domain.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}
