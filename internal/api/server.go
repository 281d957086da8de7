// Package api wires the HTTP surface: gin router, middleware and
// handlers over the service layer.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homeledger/homeledger/internal/api/handler"
	"github.com/homeledger/homeledger/internal/api/service"
	"github.com/homeledger/homeledger/internal/config"
)

// Services bundles everything the HTTP layer depends on
type Services struct {
	Auth     service.AuthService
	Ledger   service.LedgerService
	Expense  service.ExpenseService
	Category service.CategoryService
	Tag      service.TagService
	Budget   service.BudgetService
	Filter   service.FilterService
	Report   service.ReportService
}

// Server handles HTTP requests and manages the listener's lifecycle
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
	httpRouter *gin.Engine
}

// NewServer creates and configures a new HTTP server over the given services
func NewServer(log *slog.Logger, cfg *config.Config, svcs Services) *Server {
	if cfg.Application.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	httpRouter := gin.New()

	setupRouter(log, httpRouter, svcs.Auth,
		handler.NewAuthHandler(log, svcs.Auth),
		handler.NewAccountHandler(log, svcs.Ledger),
		handler.NewExpenseHandler(log, svcs.Expense),
		handler.NewCategoryHandler(log, svcs.Category),
		handler.NewTagHandler(log, svcs.Tag),
		handler.NewBudgetHandler(log, svcs.Budget),
		handler.NewFilterHandler(log, svcs.Filter),
		handler.NewReportHandler(log, svcs.Report),
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		logger:     log,
		httpServer: httpServer,
		httpRouter: httpRouter,
	}
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server with a timeout
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.httpServer.WriteTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}

	return nil
}
