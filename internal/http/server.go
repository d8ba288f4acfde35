// Package http provides the HTTP server, its router and the shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/finledger/internal/config"
	ledgerHTTP "github.com/allisson/finledger/internal/ledger/http"
	"github.com/allisson/finledger/internal/metrics"
)

// Server represents the HTTP server of the ledger API.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// LedgerHandlers groups the handlers mounted under /v1.
type LedgerHandlers struct {
	Transactions *ledgerHTTP.TransactionHandler
	Accounts     *ledgerHTTP.AccountHandler
	Cards        *ledgerHTTP.CardHandler
	Budgets      *ledgerHTTP.BudgetHandler
	Recurring    *ledgerHTTP.RecurringHandler
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin router with middleware, health endpoints and the /v1 API.
// ctx bounds the background work of the rate limiter.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers LedgerHandlers,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, cfg.OwnerHeader, s.logger)
	if corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.Use(ledgerHTTP.OwnerMiddleware(cfg.OwnerHeader, s.logger))
	if cfg.RateLimitEnabled {
		v1.Use(ledgerHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	transactions := v1.Group("/transactions")
	{
		transactions.POST("", handlers.Transactions.CreateHandler)
		transactions.GET("", handlers.Transactions.ListHandler)
		transactions.GET("/:id", handlers.Transactions.GetHandler)
		transactions.PUT("/:id", handlers.Transactions.UpdateHandler)
		transactions.DELETE("/:id", handlers.Transactions.DeleteHandler)
		transactions.POST("/:id/toggle-status", handlers.Transactions.ToggleStatusHandler)
	}

	accounts := v1.Group("/accounts")
	{
		accounts.POST("", handlers.Accounts.CreateHandler)
		accounts.GET("", handlers.Accounts.ListHandler)
		accounts.GET("/:id", handlers.Accounts.GetHandler)
		accounts.PUT("/:id", handlers.Accounts.UpdateHandler)
		accounts.DELETE("/:id", handlers.Accounts.DeleteHandler)
	}

	cards := v1.Group("/cards")
	{
		cards.POST("", handlers.Cards.CreateHandler)
		cards.GET("", handlers.Cards.ListHandler)
		cards.GET("/next-bill-amounts", handlers.Cards.NextBillAmountsHandler)
		cards.GET("/:id", handlers.Cards.GetHandler)
		cards.PUT("/:id", handlers.Cards.UpdateHandler)
		cards.DELETE("/:id", handlers.Cards.DeleteHandler)
		cards.GET("/:id/bills", handlers.Cards.ListBillsHandler)
		cards.GET("/:id/bills/:month", handlers.Cards.GetBillHandler)
		cards.POST("/:id/bills/:month/pay", handlers.Cards.PayBillHandler)
		cards.POST("/:id/bills/:month/recalculate", handlers.Cards.RecalculateBillHandler)
	}

	budgets := v1.Group("/budgets")
	{
		budgets.GET("", handlers.Budgets.ListHandler)
		budgets.PUT("", handlers.Budgets.UpsertHandler)
	}

	recurring := v1.Group("/recurring")
	{
		recurring.POST("", handlers.Recurring.CreateHandler)
		recurring.GET("", handlers.Recurring.ListHandler)
		recurring.PUT("/:id", handlers.Recurring.UpdateHandler)
		recurring.DELETE("/:id", handlers.Recurring.DeleteHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports that the process is up.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	if database != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": database},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": database},
	})
}
