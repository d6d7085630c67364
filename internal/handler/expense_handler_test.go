package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/centsible/centsible-backend/internal/service"
	"github.com/centsible/centsible-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newExpenseHandler() (*ExpenseHandler, *testutil.MockExpenseRepository, *testutil.MockSavingsGoalRepository) {
	expenseRepo := testutil.NewMockExpenseRepository()
	goalRepo := testutil.NewMockSavingsGoalRepository()
	expenseService := service.NewExpenseService(expenseRepo, goalRepo)
	return NewExpenseHandler(expenseService), expenseRepo, goalRepo
}

func TestCreateExpense_Success(t *testing.T) {
	e := echo.New()
	handler, _, _ := newExpenseHandler()
	userID := uuid.New()

	c, rec := postJSON(e, "/api/v1/expenses",
		`{"description":"Groceries","amount":"42.50","category":"needs","date":"2024-03-01"}`)
	setupAuthContext(c, userID)

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Amount != "42.50" {
		t.Errorf("Expected amount '42.50', got %s", response.Amount)
	}
	if response.Category != "needs" {
		t.Errorf("Expected category 'needs', got %s", response.Category)
	}
	if response.Date != "2024-03-01" {
		t.Errorf("Expected date '2024-03-01', got %s", response.Date)
	}
}

func TestCreateExpense_CategoryIsCaseInsensitive(t *testing.T) {
	e := echo.New()
	handler, _, _ := newExpenseHandler()

	c, rec := postJSON(e, "/api/v1/expenses",
		`{"description":"Groceries","amount":"10.00","category":"Needs","date":"2024-03-01"}`)
	setupAuthContext(c, uuid.New())

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Category != "needs" {
		t.Errorf("Expected normalized category 'needs', got %s", response.Category)
	}
}

func TestCreateExpense_UnknownCategory(t *testing.T) {
	e := echo.New()
	handler, _, _ := newExpenseHandler()

	c, rec := postJSON(e, "/api/v1/expenses",
		`{"description":"Groceries","amount":"10.00","category":"misc","date":"2024-03-01"}`)
	setupAuthContext(c, uuid.New())

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateExpense_NegativeAmount(t *testing.T) {
	e := echo.New()
	handler, _, _ := newExpenseHandler()

	c, rec := postJSON(e, "/api/v1/expenses",
		`{"description":"Refund","amount":"-5.00","category":"needs","date":"2024-03-01"}`)
	setupAuthContext(c, uuid.New())

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateExpense_BadDateFormat(t *testing.T) {
	e := echo.New()
	handler, _, _ := newExpenseHandler()

	c, rec := postJSON(e, "/api/v1/expenses",
		`{"description":"Groceries","amount":"10.00","category":"needs","date":"03/01/2024"}`)
	setupAuthContext(c, uuid.New())

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateExpense_GoalDateMismatch(t *testing.T) {
	e := echo.New()
	handler, _, goalRepo := newExpenseHandler()
	userID := uuid.New()

	goal := &domain.SavingsGoal{
		UserID:       userID,
		Name:         "Emergency fund",
		TargetAmount: decimal.NewFromInt(1000),
		StartDate:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	goalRepo.AddGoal(goal)

	c, rec := postJSON(e, "/api/v1/expenses",
		`{"description":"Transfer","amount":"200.00","category":"savings","date":"2024-07-01","goalId":"`+goal.ID.String()+`"}`)
	setupAuthContext(c, userID)

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(problem.Errors) == 0 || problem.Errors[0].Field != "date" {
		t.Errorf("Expected a 'date' field error, got %+v", problem.Errors)
	}
}

func TestCreateExpense_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler, _, _ := newExpenseHandler()

	c, rec := postJSON(e, "/api/v1/expenses",
		`{"description":"Groceries","amount":"10.00","category":"needs","date":"2024-03-01"}`)

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetExpenses_ListsOwnExpensesWithTotal(t *testing.T) {
	e := echo.New()
	handler, expenseRepo, _ := newExpenseHandler()
	userID := uuid.New()

	expenseRepo.AddExpense(&domain.Expense{
		UserID:      userID,
		Description: "Groceries",
		Amount:      decimal.NewFromInt(100),
		Category:    domain.CategoryNeeds,
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	expenseRepo.AddExpense(&domain.Expense{
		UserID:      userID,
		Description: "Cinema",
		Amount:      decimal.NewFromFloat(12.50),
		Category:    domain.CategoryWants,
		Date:        time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	})
	// Another user's expense must not leak
	expenseRepo.AddExpense(&domain.Expense{
		UserID:      uuid.New(),
		Description: "Other groceries",
		Amount:      decimal.NewFromInt(999),
		Category:    domain.CategoryNeeds,
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, userID)

	if err := handler.GetExpenses(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response ExpenseListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Expenses) != 2 {
		t.Fatalf("Expected 2 expenses, got %d", len(response.Expenses))
	}
	if response.TotalExpenses != "112.50" {
		t.Errorf("Expected total '112.50', got %s", response.TotalExpenses)
	}
}

func TestUpdateExpense_Success(t *testing.T) {
	e := echo.New()
	handler, expenseRepo, _ := newExpenseHandler()
	userID := uuid.New()

	expense := &domain.Expense{
		UserID:      userID,
		Description: "Groceries",
		Amount:      decimal.NewFromInt(100),
		Category:    domain.CategoryNeeds,
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	expenseRepo.AddExpense(expense)

	c, rec := postJSON(e, "/api/v1/expenses/"+expense.ID.String(),
		`{"description":"Weekly groceries","amount":"110.00","category":"needs","date":"2024-03-02"}`)
	c.SetParamNames("id")
	c.SetParamValues(expense.ID.String())
	setupAuthContext(c, userID)

	if err := handler.UpdateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Description != "Weekly groceries" {
		t.Errorf("Expected updated description, got %s", response.Description)
	}
	if response.Amount != "110.00" {
		t.Errorf("Expected amount '110.00', got %s", response.Amount)
	}
}

func TestUpdateExpense_NotFound(t *testing.T) {
	e := echo.New()
	handler, _, _ := newExpenseHandler()

	c, rec := postJSON(e, "/api/v1/expenses/"+uuid.NewString(),
		`{"description":"Groceries","amount":"10.00","category":"needs","date":"2024-03-01"}`)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())
	setupAuthContext(c, uuid.New())

	if err := handler.UpdateExpense(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteExpense_Success(t *testing.T) {
	e := echo.New()
	handler, expenseRepo, _ := newExpenseHandler()
	userID := uuid.New()

	expense := &domain.Expense{
		UserID:      userID,
		Description: "Groceries",
		Amount:      decimal.NewFromInt(100),
		Category:    domain.CategoryNeeds,
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	expenseRepo.AddExpense(expense)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/expenses/"+expense.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(expense.ID.String())
	setupAuthContext(c, userID)

	if err := handler.DeleteExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if _, ok := expenseRepo.Expenses[expense.ID]; ok {
		t.Error("Expected expense to be deleted")
	}
}

func TestDeleteExpense_ForeignExpense(t *testing.T) {
	e := echo.New()
	handler, expenseRepo, _ := newExpenseHandler()

	expense := &domain.Expense{
		UserID:      uuid.New(),
		Description: "Groceries",
		Amount:      decimal.NewFromInt(100),
		Category:    domain.CategoryNeeds,
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	expenseRepo.AddExpense(expense)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/expenses/"+expense.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(expense.ID.String())
	setupAuthContext(c, uuid.New())

	if err := handler.DeleteExpense(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
