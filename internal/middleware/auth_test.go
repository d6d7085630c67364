package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MockSessionValidator implements SessionValidator for testing
type MockSessionValidator struct {
	userID uuid.UUID
	err    error
	token  string
}

func (m *MockSessionValidator) ValidateSession(ctx context.Context, token string) (uuid.UUID, error) {
	m.token = token
	if m.err != nil {
		return uuid.Nil, m.err
	}
	return m.userID, nil
}

func TestAuthenticate_Success(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	validator := &MockSessionValidator{userID: userID}
	middleware := NewAuthMiddleware(validator)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
	req.Header.Set("Authorization", "Bearer cents_testtoken123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	handler := func(c echo.Context) error {
		handlerCalled = true
		if GetUserID(c) != userID {
			t.Errorf("Expected user ID %s, got %s", userID, GetUserID(c))
		}
		if GetSessionToken(c) != "cents_testtoken123" {
			t.Errorf("Expected token in context, got %s", GetSessionToken(c))
		}
		return c.String(http.StatusOK, "OK")
	}

	err := middleware.Authenticate()(handler)(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !handlerCalled {
		t.Error("Handler was not called")
	}
	if validator.token != "cents_testtoken123" {
		t.Errorf("Expected validator to receive the raw token, got %s", validator.token)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	e := echo.New()

	validator := &MockSessionValidator{}
	middleware := NewAuthMiddleware(validator)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
	// No Authorization header
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		t.Error("Handler should not be called")
		return nil
	}

	err := middleware.Authenticate()(handler)(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestAuthenticate_InvalidFormat(t *testing.T) {
	e := echo.New()

	validator := &MockSessionValidator{}
	middleware := NewAuthMiddleware(validator)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
	req.Header.Set("Authorization", "cents_testtoken123") // no Bearer prefix
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		t.Error("Handler should not be called")
		return nil
	}

	err := middleware.Authenticate()(handler)(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestAuthenticate_InvalidSession(t *testing.T) {
	e := echo.New()

	validator := &MockSessionValidator{err: domain.ErrSessionNotFound}
	middleware := NewAuthMiddleware(validator)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
	req.Header.Set("Authorization", "Bearer cents_expiredtoken")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		t.Error("Handler should not be called")
		return nil
	}

	err := middleware.Authenticate()(handler)(c)
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetUserID_NoContext(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if GetUserID(c) != uuid.Nil {
		t.Error("Expected uuid.Nil for unauthenticated context")
	}
	if GetSessionToken(c) != "" {
		t.Error("Expected empty token for unauthenticated context")
	}
}
