// Package router assembles the gin engine: the shared middleware chain
// and the full API route tree.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ledgerly/backend/internal/domain/identity"
	"github.com/ledgerly/backend/internal/infrastructure/auth"
	"github.com/ledgerly/backend/internal/infrastructure/config"
	"github.com/ledgerly/backend/internal/infrastructure/logger"
	"github.com/ledgerly/backend/internal/interfaces/http/handler"
	"github.com/ledgerly/backend/internal/interfaces/http/middleware"
)

// Register and login verify Firebase tokens themselves, so they bypass
// the Auth middleware but sit behind a stricter per-IP limiter.
const (
	authRateLimitRequests = 10
	authRateLimitWindow   = time.Minute
)

// Handlers bundles every HTTP handler the router wires up
type Handlers struct {
	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Customer    *handler.CustomerHandler
	BankAccount *handler.BankAccountHandler
	Invoice     *handler.InvoiceHandler
	Service     *handler.ServiceHandler
	Category    *handler.CategoryHandler
	Transaction *handler.TransactionHandler
	Search      *handler.SearchHandler
}

// Dependencies carries everything New needs to assemble the engine.
// ResolveUser maps a verified Firebase ID to a local account; the Auth
// middleware rejects the request when it fails.
type Dependencies struct {
	Config      *config.Config
	Logger      *zap.Logger
	Verifier    auth.TokenVerifier
	ResolveUser func(c *gin.Context, firebaseID string) (*identity.User, error)
	Handlers    Handlers
}

// New builds the engine with the middleware chain and all routes.
// /health stays outside the API group so load balancers and container
// probes can reach it without credentials.
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig(cfg)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", deps.Handlers.System.Health)

	api := engine.Group("/api/v1")

	authLimiter := middleware.NewRateLimiter(authRateLimitRequests, authRateLimitWindow)
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimit(authLimiter))
	{
		authGroup.POST("/register", deps.Handlers.Auth.Register)
		authGroup.POST("/login", deps.Handlers.Auth.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(deps.Verifier, deps.ResolveUser))
	{
		protected.GET("/system/info", deps.Handlers.System.GetSystemInfo)
		protected.GET("/search", deps.Handlers.Search.Search)

		users := protected.Group("/users")
		{
			users.GET("/me", deps.Handlers.User.Me)
			users.GET("", middleware.RequireAdmin(), deps.Handlers.User.List)
		}

		customers := protected.Group("/customers")
		{
			customers.POST("", deps.Handlers.Customer.Create)
			customers.GET("", deps.Handlers.Customer.List)
			customers.GET("/:id", deps.Handlers.Customer.Get)
			customers.PATCH("/:id", deps.Handlers.Customer.Update)
			customers.DELETE("/:id", deps.Handlers.Customer.Delete)
		}

		bankAccounts := protected.Group("/bank-accounts")
		{
			bankAccounts.POST("", deps.Handlers.BankAccount.Create)
			bankAccounts.GET("", deps.Handlers.BankAccount.List)
			bankAccounts.GET("/:id", deps.Handlers.BankAccount.Get)
			bankAccounts.PATCH("/:id", deps.Handlers.BankAccount.Update)
			bankAccounts.DELETE("/:id", deps.Handlers.BankAccount.Delete)
		}

		invoices := protected.Group("/invoices")
		{
			invoices.POST("", deps.Handlers.Invoice.Create)
			invoices.GET("", deps.Handlers.Invoice.List)
			invoices.GET("/:id", deps.Handlers.Invoice.Get)
			invoices.PATCH("/:id", deps.Handlers.Invoice.Update)
			invoices.DELETE("/:id", deps.Handlers.Invoice.Delete)
		}

		services := protected.Group("/services")
		{
			services.POST("", deps.Handlers.Service.Create)
			services.GET("", deps.Handlers.Service.List)
			services.GET("/:id", deps.Handlers.Service.Get)
			services.PATCH("/:id", deps.Handlers.Service.Update)
			services.DELETE("/:id", deps.Handlers.Service.Delete)
		}

		categories := protected.Group("/categories")
		{
			categories.POST("", deps.Handlers.Category.Create)
			categories.GET("", deps.Handlers.Category.List)
			categories.GET("/:id", deps.Handlers.Category.Get)
			categories.PATCH("/:id", deps.Handlers.Category.Update)
			categories.DELETE("/:id", deps.Handlers.Category.Delete)
		}

		transactions := protected.Group("/transactions")
		{
			transactions.POST("", deps.Handlers.Transaction.Create)
			transactions.GET("", deps.Handlers.Transaction.List)
			transactions.GET("/summary", deps.Handlers.Transaction.Summary)
			transactions.GET("/balances", deps.Handlers.Transaction.Balances)
			transactions.GET("/:id", deps.Handlers.Transaction.Get)
			transactions.PATCH("/:id", deps.Handlers.Transaction.Update)
			transactions.DELETE("/:id", deps.Handlers.Transaction.Delete)
		}
	}

	return engine
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}
