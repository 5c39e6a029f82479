// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/creator-ledger/backend/config"
	"github.com/creator-ledger/backend/internal/application/adapter"
	"github.com/creator-ledger/backend/internal/application/usecase/auth"
	"github.com/creator-ledger/backend/internal/application/usecase/dashboard"
	"github.com/creator-ledger/backend/internal/application/usecase/expense"
	"github.com/creator-ledger/backend/internal/application/usecase/platform"
	"github.com/creator-ledger/backend/internal/application/usecase/report"
	"github.com/creator-ledger/backend/internal/application/usecase/transaction"
	"github.com/creator-ledger/backend/internal/infra/server/router"
	"github.com/creator-ledger/backend/internal/integration/adapters"
	"github.com/creator-ledger/backend/internal/integration/cache"
	"github.com/creator-ledger/backend/internal/integration/email"
	"github.com/creator-ledger/backend/internal/integration/email/templates"
	"github.com/creator-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/creator-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/creator-ledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config        *config.Config
	DB            *gorm.DB
	Redis         *redis.Client
	Router        *router.Router
	ReportUseCase *report.RunQuarterlyReportUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) (*Injector, error) {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	connectionRepo := persistence.NewPlatformConnectionRepository(db)

	// Report engine collaborators
	userDirectory := persistence.NewUserDirectory(db)
	ledgerQuery := persistence.NewLedgerQuery(db)

	// Adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to build email templates: %w", err)
	}

	var sender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		// No API key configured; deliveries land in the mock. Useful for
		// local development and tests.
		sender = email.NewMockEmailSender()
	}
	notifier := email.NewReportNotifier(sender, renderer)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	runLock := cache.NewRunLock(redisClient)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Ledger use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)

	// Platform and dashboard use cases
	listConnectionsUseCase := platform.NewListConnectionsUseCase(connectionRepo)
	getKPIsUseCase := dashboard.NewGetKPIsUseCase(transactionRepo, expenseRepo)

	// Report engine
	runReportUseCase := report.NewRunQuarterlyReportUseCase(
		userDirectory,
		ledgerQuery,
		notifier,
		report.Policy{
			SkipZeroActivity: cfg.Report.SkipZeroActivity,
			Concurrency:      cfg.Report.Concurrency,
		},
	)

	// Controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	transactionController := controller.NewTransactionController(createTransactionUseCase, listTransactionsUseCase)
	expenseController := controller.NewExpenseController(createExpenseUseCase, listExpensesUseCase)
	platformController := controller.NewPlatformController(listConnectionsUseCase)
	dashboardController := controller.NewDashboardController(getKPIsUseCase)
	reportController := controller.NewReportController(runReportUseCase, runLock, cfg.Report)

	// Middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	cronAuthMiddleware := middleware.NewCronAuthMiddleware(cfg.Report.TriggerSecret)

	r := router.NewRouter(
		healthController,
		authController,
		transactionController,
		expenseController,
		platformController,
		dashboardController,
		reportController,
		loginRateLimiter,
		authMiddleware,
		cronAuthMiddleware,
	)

	return &Injector{
		Config:        cfg,
		DB:            db,
		Redis:         redisClient,
		Router:        r,
		ReportUseCase: runReportUseCase,
	}, nil
}
