package testutil

import (
	"context"
	"sort"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByEmail  map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(user *domain.User) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByEmail: make(map[string]*domain.User),
		ByID:    make(map[uuid.UUID]*domain.User),
	}
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(user)
	}
	if _, ok := m.ByEmail[user.Email]; ok {
		return nil, domain.ErrEmailAlreadyRegistered
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.ByEmail[user.Email] = user
	m.ByID[user.ID] = user
	return user, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(email string) (*domain.User, error) {
	if user, ok := m.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.ByEmail[user.Email] = user
	m.ByID[user.ID] = user
}

// MockSessionRepository is a mock implementation of domain.SessionRepository
type MockSessionRepository struct {
	Sessions    map[uuid.UUID]*domain.Session
	ByTokenHash map[string]*domain.Session
}

// NewMockSessionRepository creates a new MockSessionRepository
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		Sessions:    make(map[uuid.UUID]*domain.Session),
		ByTokenHash: make(map[string]*domain.Session),
	}
}

// Create stores a new session
func (m *MockSessionRepository) Create(_ context.Context, session *domain.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	m.Sessions[session.ID] = session
	m.ByTokenHash[session.TokenHash] = session
	return nil
}

// GetByTokenHash retrieves a session by its token hash
func (m *MockSessionRepository) GetByTokenHash(_ context.Context, tokenHash string) (*domain.Session, error) {
	if session, ok := m.ByTokenHash[tokenHash]; ok {
		return session, nil
	}
	return nil, domain.ErrSessionNotFound
}

// Delete removes a session by ID
func (m *MockSessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	session, ok := m.Sessions[id]
	if !ok {
		return nil
	}
	delete(m.Sessions, id)
	delete(m.ByTokenHash, session.TokenHash)
	return nil
}

// DeleteByUser removes all sessions for a user
func (m *MockSessionRepository) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	for id, session := range m.Sessions {
		if session.UserID == userID {
			delete(m.Sessions, id)
			delete(m.ByTokenHash, session.TokenHash)
		}
	}
	return nil
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses    map[uuid.UUID]*domain.Expense
	GetByUserFn func(userID uuid.UUID) ([]*domain.Expense, error)
	UpdateFn    func(expense *domain.Expense) (*domain.Expense, error)
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[uuid.UUID]*domain.Expense),
	}
}

// Create creates a new expense
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// GetByID retrieves an expense by ID, scoped to the user
func (m *MockExpenseRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Expense, error) {
	expense, ok := m.Expenses[id]
	if !ok || expense.UserID != userID {
		return nil, domain.ErrExpenseNotFound
	}
	return expense, nil
}

// GetByUser retrieves all expenses for a user, newest first
func (m *MockExpenseRepository) GetByUser(userID uuid.UUID) ([]*domain.Expense, error) {
	if m.GetByUserFn != nil {
		return m.GetByUserFn(userID)
	}
	var expenses []*domain.Expense
	for _, expense := range m.Expenses {
		if expense.UserID == userID {
			expenses = append(expenses, expense)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})
	return expenses, nil
}

// GetByGoal retrieves all expenses attached to a goal, oldest first
func (m *MockExpenseRepository) GetByGoal(userID uuid.UUID, goalID uuid.UUID) ([]*domain.Expense, error) {
	var expenses []*domain.Expense
	for _, expense := range m.Expenses {
		if expense.UserID == userID && expense.GoalID != nil && *expense.GoalID == goalID {
			expenses = append(expenses, expense)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.Before(expenses[j].Date)
	})
	return expenses, nil
}

// Update updates an existing expense
func (m *MockExpenseRepository) Update(expense *domain.Expense) (*domain.Expense, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(expense)
	}
	existing, ok := m.Expenses[expense.ID]
	if !ok || existing.UserID != expense.UserID {
		return nil, domain.ErrExpenseNotFound
	}
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// Delete removes an expense by ID
func (m *MockExpenseRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	expense, ok := m.Expenses[id]
	if !ok || expense.UserID != userID {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// ClearGoalRef detaches a single expense from its goal
func (m *MockExpenseRepository) ClearGoalRef(userID uuid.UUID, id uuid.UUID) error {
	expense, ok := m.Expenses[id]
	if !ok || expense.UserID != userID {
		return nil
	}
	expense.GoalID = nil
	return nil
}

// ClearGoalRefs detaches every expense referencing the goal
func (m *MockExpenseRepository) ClearGoalRefs(userID uuid.UUID, goalID uuid.UUID) error {
	for _, expense := range m.Expenses {
		if expense.UserID == userID && expense.GoalID != nil && *expense.GoalID == goalID {
			expense.GoalID = nil
		}
	}
	return nil
}

// AddExpense adds an expense to the mock repository (helper for tests)
func (m *MockExpenseRepository) AddExpense(expense *domain.Expense) {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	m.Expenses[expense.ID] = expense
}

// MockBudgetAllocationRepository is a mock implementation of
// domain.BudgetAllocationRepository
type MockBudgetAllocationRepository struct {
	Allocations map[uuid.UUID]*domain.BudgetAllocation
	UpsertFn    func(allocation *domain.BudgetAllocation) (*domain.BudgetAllocation, error)
}

// NewMockBudgetAllocationRepository creates a new MockBudgetAllocationRepository
func NewMockBudgetAllocationRepository() *MockBudgetAllocationRepository {
	return &MockBudgetAllocationRepository{
		Allocations: make(map[uuid.UUID]*domain.BudgetAllocation),
	}
}

// Get retrieves the allocation for a user
func (m *MockBudgetAllocationRepository) Get(userID uuid.UUID) (*domain.BudgetAllocation, error) {
	if allocation, ok := m.Allocations[userID]; ok {
		return allocation, nil
	}
	return nil, domain.ErrNotFound
}

// Upsert stores the allocation for a user
func (m *MockBudgetAllocationRepository) Upsert(allocation *domain.BudgetAllocation) (*domain.BudgetAllocation, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(allocation)
	}
	m.Allocations[allocation.UserID] = allocation
	return allocation, nil
}

// MockSavingsGoalRepository is a mock implementation of domain.SavingsGoalRepository
type MockSavingsGoalRepository struct {
	Goals    map[uuid.UUID]*domain.SavingsGoal
	DeleteFn func(userID uuid.UUID, id uuid.UUID) error
}

// NewMockSavingsGoalRepository creates a new MockSavingsGoalRepository
func NewMockSavingsGoalRepository() *MockSavingsGoalRepository {
	return &MockSavingsGoalRepository{
		Goals: make(map[uuid.UUID]*domain.SavingsGoal),
	}
}

// Create creates a new savings goal
func (m *MockSavingsGoalRepository) Create(goal *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	m.Goals[goal.ID] = goal
	return goal, nil
}

// GetByID retrieves a goal by ID, scoped to the user
func (m *MockSavingsGoalRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.SavingsGoal, error) {
	goal, ok := m.Goals[id]
	if !ok || goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	return goal, nil
}

// GetByUser retrieves all goals for a user, oldest first
func (m *MockSavingsGoalRepository) GetByUser(userID uuid.UUID) ([]*domain.SavingsGoal, error) {
	var goals []*domain.SavingsGoal
	for _, goal := range m.Goals {
		if goal.UserID == userID {
			goals = append(goals, goal)
		}
	}
	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})
	return goals, nil
}

// Update updates an existing goal
func (m *MockSavingsGoalRepository) Update(goal *domain.SavingsGoal) (*domain.SavingsGoal, error) {
	existing, ok := m.Goals[goal.ID]
	if !ok || existing.UserID != goal.UserID {
		return nil, domain.ErrGoalNotFound
	}
	m.Goals[goal.ID] = goal
	return goal, nil
}

// Delete removes a goal by ID
func (m *MockSavingsGoalRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(userID, id)
	}
	goal, ok := m.Goals[id]
	if !ok || goal.UserID != userID {
		return domain.ErrGoalNotFound
	}
	delete(m.Goals, id)
	return nil
}

// AddGoal adds a goal to the mock repository (helper for tests)
func (m *MockSavingsGoalRepository) AddGoal(goal *domain.SavingsGoal) {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	m.Goals[goal.ID] = goal
}
