package handler

import (
	"context"

	"github.com/centsible/centsible-backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// setupAuthContext injects an authenticated user id into the request
// context, standing in for the auth middleware in handler tests
func setupAuthContext(c echo.Context, userID uuid.UUID) {
	ctx := context.WithValue(c.Request().Context(), middleware.UserIDKey, userID)
	c.SetRequest(c.Request().WithContext(ctx))
}

// setupAuthContextWithToken also injects the raw session token, as the
// auth middleware would for logout
func setupAuthContextWithToken(c echo.Context, userID uuid.UUID, token string) {
	ctx := c.Request().Context()
	ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.SessionTokenKey, token)
	c.SetRequest(c.Request().WithContext(ctx))
}
