package main

import (
	"fmt"
	"net/http"
	"os"

	"fundboard/internal/config"
	"fundboard/internal/database"
	"fundboard/internal/draft"
	"fundboard/internal/handlers"
	"fundboard/internal/logger"
	"fundboard/internal/middleware"
	"fundboard/internal/services"
	"fundboard/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fundboard/internal/docs" // Import swagger docs
)

// @title           Fundboard API
// @version         1.0
// @description     Fundboard manages budgets and expense tracking for startup funding calls: budget allocation across categories, expense submission and approval, reusable budget templates, and CSV export.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	callService := services.NewCallService(db)
	budgetService := services.NewBudgetService(db)
	expenseService := services.NewExpenseService(db)
	templateService := services.NewTemplateService(db)
	auditService := services.NewAuditService(db)

	// In-memory auto-save store for budget and expense forms
	draftStore := draft.NewStore(appConfig.DraftDebounce)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	callHandler := handlers.NewCallHandler(callService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService, draftStore)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService, draftStore)
	templateHandler := handlers.NewTemplateHandler(templateService, auditService)
	draftHandler := handlers.NewDraftHandler(draftStore)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Startup call routes
	calls := protected.Group("/calls")
	calls.POST("", middleware.RequireAdmin(), callHandler.CreateCall)
	calls.GET("", callHandler.GetCalls)
	calls.GET("/:id", callHandler.GetCall)
	calls.GET("/:id/budgets", callHandler.GetCallBudgets)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.POST("/:id/close", middleware.RequireAdmin(), budgetHandler.CloseBudget)
	budgets.GET("/:id/summary", budgetHandler.GetSummary)
	budgets.POST("/:id/distribute-remaining", budgetHandler.DistributeRemaining)
	budgets.POST("/:id/adjust-to-total", budgetHandler.AdjustToTotal)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/export", expenseHandler.ExportExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)
	expenses.PATCH("/:id/status", middleware.RequireAdmin(), expenseHandler.TransitionExpense)

	// Budget template routes
	templates := protected.Group("/templates")
	templates.POST("", middleware.RequireAdmin(), templateHandler.CreateTemplate)
	templates.GET("", templateHandler.GetTemplates)
	templates.GET("/:id", templateHandler.GetTemplate)

	// Form auto-save routes
	drafts := protected.Group("/drafts")
	drafts.PUT("/:resource/:id", draftHandler.SaveDraft)
	drafts.GET("/:resource/:id", draftHandler.GetDraft)
	drafts.DELETE("/:resource/:id", draftHandler.DeleteDraft)

	log.Infof("Starting Fundboard backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
