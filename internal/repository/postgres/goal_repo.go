package postgres

import (
	"context"
	"errors"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SavingsGoalRepository implements domain.SavingsGoalRepository using PostgreSQL
type SavingsGoalRepository struct {
	pool *pgxpool.Pool
}

// NewSavingsGoalRepository creates a new SavingsGoalRepository
func NewSavingsGoalRepository(pool *pgxpool.Pool) *SavingsGoalRepository {
	return &SavingsGoalRepository{pool: pool}
}

const goalColumns = `id, user_id, name, target_amount, start_date, end_date, created_at, updated_at`

func scanGoal(row pgx.Row) (*domain.SavingsGoal, error) {
	var g domain.SavingsGoal
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount,
		&g.StartDate, &g.EndDate, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Create inserts a new savings goal
func (r *SavingsGoalRepository) Create(goal *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	ctx := context.Background()

	query := `
		INSERT INTO savings_goals (id, user_id, name, target_amount, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + goalColumns

	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}

	return scanGoal(r.pool.QueryRow(ctx, query,
		goal.ID, goal.UserID, goal.Name, goal.TargetAmount, goal.StartDate, goal.EndDate))
}

// GetByID retrieves a goal scoped by user
func (r *SavingsGoalRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.SavingsGoal, error) {
	ctx := context.Background()

	query := `SELECT ` + goalColumns + ` FROM savings_goals WHERE user_id = $1 AND id = $2`

	goal, err := scanGoal(r.pool.QueryRow(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// GetByUser retrieves all goals for a user, oldest first
func (r *SavingsGoalRepository) GetByUser(userID uuid.UUID) ([]*domain.SavingsGoal, error) {
	ctx := context.Background()

	query := `SELECT ` + goalColumns + ` FROM savings_goals WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []*domain.SavingsGoal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return goals, nil
}

// Update replaces a goal's mutable fields
func (r *SavingsGoalRepository) Update(goal *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	ctx := context.Background()

	query := `
		UPDATE savings_goals
		SET name = $3, target_amount = $4, start_date = $5, end_date = $6, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING ` + goalColumns

	updated, err := scanGoal(r.pool.QueryRow(ctx, query,
		goal.UserID, goal.ID, goal.Name, goal.TargetAmount, goal.StartDate, goal.EndDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a goal scoped by user
func (r *SavingsGoalRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM savings_goals WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}
