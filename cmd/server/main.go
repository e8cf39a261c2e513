package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/ledgerly/backend/internal/application/billing"
	identityapp "github.com/ledgerly/backend/internal/application/identity"
	ledgerapp "github.com/ledgerly/backend/internal/application/ledger"
	searchapp "github.com/ledgerly/backend/internal/application/search"
	"github.com/ledgerly/backend/internal/domain/identity"
	"github.com/ledgerly/backend/internal/infrastructure/auth"
	"github.com/ledgerly/backend/internal/infrastructure/config"
	"github.com/ledgerly/backend/internal/infrastructure/logger"
	"github.com/ledgerly/backend/internal/infrastructure/persistence"
	"github.com/ledgerly/backend/internal/interfaces/http/handler"
	"github.com/ledgerly/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Ledgerly backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	bankAccountRepo := persistence.NewGormBankAccountRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	templateRepo := persistence.NewGormServiceTemplateRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)

	// Token verification against Firebase. The verifier caches the
	// public keys and refreshes them per the Cache-Control headers.
	verifier := auth.NewFirebaseVerifier(cfg.Firebase.ProjectID)

	// Application services
	authService := identityapp.NewAuthService(userRepo, roleRepo, verifier)
	userService := identityapp.NewUserService(userRepo)
	customerService := billingapp.NewCustomerService(customerRepo, invoiceRepo)
	bankAccountService := billingapp.NewBankAccountService(bankAccountRepo, invoiceRepo)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, customerRepo, bankAccountRepo)
	catalogService := billingapp.NewServiceCatalogService(templateRepo)
	categoryService := ledgerapp.NewCategoryService(categoryRepo, transactionRepo)
	transactionService := ledgerapp.NewTransactionService(transactionRepo, categoryRepo, bankAccountRepo)
	searchService := searchapp.NewService(customerRepo, bankAccountRepo, invoiceRepo, templateRepo, categoryRepo, transactionRepo, userRepo)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Dependencies{
		Config:   cfg,
		Logger:   log,
		Verifier: verifier,
		ResolveUser: func(c *gin.Context, firebaseID string) (*identity.User, error) {
			return userRepo.FindByFirebaseID(c.Request.Context(), firebaseID)
		},
		Handlers: router.Handlers{
			System:      handler.NewSystemHandler(db),
			Auth:        handler.NewAuthHandler(authService),
			User:        handler.NewUserHandler(userService),
			Customer:    handler.NewCustomerHandler(customerService),
			BankAccount: handler.NewBankAccountHandler(bankAccountService),
			Invoice:     handler.NewInvoiceHandler(invoiceService),
			Service:     handler.NewServiceHandler(catalogService),
			Category:    handler.NewCategoryHandler(categoryService),
			Transaction: handler.NewTransactionHandler(transactionService),
			Search:      handler.NewSearchHandler(searchService),
		},
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
