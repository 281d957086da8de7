package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homeledger/homeledger/internal/api/handler"
	"github.com/homeledger/homeledger/internal/api/middleware"
)

// setupRouter configures API routes and middleware. Everything except
// registration, login and the health check sits behind bearer auth and
// is scoped to the authenticated owner.
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	verifier middleware.TokenVerifier,
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	expenseHandler *handler.ExpenseHandler,
	categoryHandler *handler.CategoryHandler,
	tagHandler *handler.TagHandler,
	budgetHandler *handler.BudgetHandler,
	filterHandler *handler.FilterHandler,
	reportHandler *handler.ReportHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		authed := v1.Group("", middleware.Auth(verifier))
		{
			accounts := authed.Group("/accounts")
			{
				accounts.GET("", accountHandler.List)
				accounts.POST("", accountHandler.Create)
				accounts.POST("/transfer", accountHandler.Transfer)
				accounts.GET("/:id", accountHandler.GetByID)
				accounts.PUT("/:id", accountHandler.Update)
				accounts.DELETE("/:id", accountHandler.Delete)
				accounts.POST("/:id/adjust", accountHandler.Adjust)
			}

			authed.GET("/transfers", accountHandler.ListTransfers)

			expenses := authed.Group("/expenses")
			{
				expenses.GET("", expenseHandler.List)
				expenses.POST("", expenseHandler.Create)
				expenses.DELETE("/:id", expenseHandler.Delete)
			}

			categories := authed.Group("/categories")
			{
				categories.GET("", categoryHandler.List)
				categories.POST("", categoryHandler.Create)
				categories.PUT("/:id", categoryHandler.Update)
				categories.DELETE("/:id", categoryHandler.Delete)
			}

			tags := authed.Group("/tags")
			{
				tags.GET("", tagHandler.List)
				tags.POST("", tagHandler.Create)
				tags.DELETE("/:id", tagHandler.Delete)
			}

			authed.GET("/budget", budgetHandler.Get)
			authed.PUT("/budget", budgetHandler.Set)

			filters := authed.Group("/filters")
			{
				filters.GET("", filterHandler.List)
				filters.POST("", filterHandler.Create)
				filters.PUT("/:id", filterHandler.Update)
				filters.DELETE("/:id", filterHandler.Delete)
			}

			authed.GET("/reports", reportHandler.Get)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
