package handler

import (
	"github.com/centsible/centsible-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, expenseHandler *ExpenseHandler, budgetHandler *BudgetHandler, goalHandler *GoalHandler, summaryHandler *SummaryHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (register and login are the only public endpoints)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	authProtected := api.Group("/auth")
	authProtected.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	authProtected.POST("/logout", authHandler.Logout)
	authProtected.GET("/me", authHandler.Me)

	// Expense routes (protected)
	expenses := api.Group("/expenses")
	expenses.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Budget allocation routes (protected)
	budget := api.Group("/budget")
	budget.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	budget.GET("", budgetHandler.GetAllocation)
	budget.PUT("", budgetHandler.SetAllocation)
	budget.PUT("/onboarding", budgetHandler.SetOnboardingAllocation)

	// Savings goal routes (protected)
	goals := api.Group("/goals")
	goals.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/attach", goalHandler.AttachExpense)

	// Summary routes (protected)
	summary := api.Group("/summary")
	summary.Use(authMiddleware.Authenticate(), middleware.RateLimitMiddleware(rateLimiter))
	summary.GET("", summaryHandler.GetSummary)
}
