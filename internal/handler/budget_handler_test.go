package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/centsible/centsible-backend/internal/service"
	"github.com/centsible/centsible-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newBudgetHandler() *BudgetHandler {
	allocationRepo := testutil.NewMockBudgetAllocationRepository()
	return NewBudgetHandler(service.NewBudgetAllocationService(allocationRepo))
}

func TestGetAllocation_DefaultSplit(t *testing.T) {
	e := echo.New()
	handler := newBudgetHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budget", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, uuid.New())

	if err := handler.GetAllocation(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response AllocationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Needs != "50.00" || response.Wants != "30.00" || response.Savings != "20.00" || response.Investments != "0.00" {
		t.Errorf("Expected default 50/30/20/0 split, got %+v", response)
	}
}

func TestSetAllocation_Success(t *testing.T) {
	e := echo.New()
	handler := newBudgetHandler()

	c, rec := postJSON(e, "/api/v1/budget",
		`{"needs":"40","wants":"30","savings":"20","investments":"10"}`)
	setupAuthContext(c, uuid.New())

	if err := handler.SetAllocation(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response AllocationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Total != "100.00" {
		t.Errorf("Expected total '100.00', got %s", response.Total)
	}
}

func TestSetAllocation_SumOverHundred(t *testing.T) {
	e := echo.New()
	handler := newBudgetHandler()

	c, rec := postJSON(e, "/api/v1/budget",
		`{"needs":"60","wants":"60","savings":"10","investments":"0"}`)
	setupAuthContext(c, uuid.New())

	if err := handler.SetAllocation(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Detail != "The total percentages cannot exceed 100%" {
		t.Errorf("Expected limit message, got %s", problem.Detail)
	}
}

func TestSetAllocation_NegativePercentage(t *testing.T) {
	e := echo.New()
	handler := newBudgetHandler()

	c, rec := postJSON(e, "/api/v1/budget",
		`{"needs":"-10","wants":"30","savings":"20","investments":"10"}`)
	setupAuthContext(c, uuid.New())

	if err := handler.SetAllocation(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestSetAllocation_NonNumericPercentage(t *testing.T) {
	e := echo.New()
	handler := newBudgetHandler()

	c, rec := postJSON(e, "/api/v1/budget",
		`{"needs":"forty","wants":"30","savings":"20","investments":"10"}`)
	setupAuthContext(c, uuid.New())

	if err := handler.SetAllocation(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestSetOnboardingAllocation_DerivesInvestments(t *testing.T) {
	e := echo.New()
	handler := newBudgetHandler()

	c, rec := postJSON(e, "/api/v1/budget/onboarding",
		`{"needs":"50","wants":"30","savings":"15"}`)
	setupAuthContext(c, uuid.New())

	if err := handler.SetOnboardingAllocation(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response AllocationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Investments != "5.00" {
		t.Errorf("Expected derived investments '5.00', got %s", response.Investments)
	}
	if response.Total != "100.00" {
		t.Errorf("Expected total '100.00', got %s", response.Total)
	}
}

func TestSetOnboardingAllocation_InputsOverHundred(t *testing.T) {
	e := echo.New()
	handler := newBudgetHandler()

	c, rec := postJSON(e, "/api/v1/budget/onboarding",
		`{"needs":"60","wants":"30","savings":"20"}`)
	setupAuthContext(c, uuid.New())

	if err := handler.SetOnboardingAllocation(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestSetAllocation_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler := newBudgetHandler()

	c, rec := postJSON(e, "/api/v1/budget",
		`{"needs":"40","wants":"30","savings":"20","investments":"10"}`)

	if err := handler.SetAllocation(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}
