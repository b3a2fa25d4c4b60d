package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fundboard/internal/draft"
	"fundboard/internal/handlers"
	"fundboard/internal/logger"
	"fundboard/internal/middleware"
	"fundboard/internal/models"
	"fundboard/internal/services"
	"fundboard/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Drafts *draft.Store
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.StartupCall{},
		&models.Budget{},
		&models.BudgetCategory{},
		&models.Expense{},
		&models.BudgetTemplate{},
		&models.TemplateWeight{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	callService := services.NewCallService(db)
	budgetService := services.NewBudgetService(db)
	expenseService := services.NewExpenseService(db)
	templateService := services.NewTemplateService(db)
	auditService := services.NewAuditService(db)

	draftStore := draft.NewStore(0)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	callHandler := handlers.NewCallHandler(callService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService, draftStore)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService, draftStore)
	templateHandler := handlers.NewTemplateHandler(templateService, auditService)
	draftHandler := handlers.NewDraftHandler(draftStore)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	calls := protected.Group("/calls")
	calls.POST("", middleware.RequireAdmin(), callHandler.CreateCall)
	calls.GET("", callHandler.GetCalls)
	calls.GET("/:id", callHandler.GetCall)
	calls.GET("/:id/budgets", callHandler.GetCallBudgets)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.POST("/:id/close", middleware.RequireAdmin(), budgetHandler.CloseBudget)
	budgets.GET("/:id/summary", budgetHandler.GetSummary)
	budgets.POST("/:id/distribute-remaining", budgetHandler.DistributeRemaining)
	budgets.POST("/:id/adjust-to-total", budgetHandler.AdjustToTotal)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/export", expenseHandler.ExportExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)
	expenses.PATCH("/:id/status", middleware.RequireAdmin(), expenseHandler.TransitionExpense)

	templates := protected.Group("/templates")
	templates.POST("", middleware.RequireAdmin(), templateHandler.CreateTemplate)
	templates.GET("", templateHandler.GetTemplates)
	templates.GET("/:id", templateHandler.GetTemplate)

	drafts := protected.Group("/drafts")
	drafts.PUT("/:resource/:id", draftHandler.SaveDraft)
	drafts.GET("/:resource/:id", draftHandler.GetDraft)
	drafts.DELETE("/:resource/:id", draftHandler.DeleteDraft)

	return &testApp{DB: db, Router: router, Drafts: draftStore}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user with the given role and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string, role models.UserRole) (token string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User","role":%q}`, email, password, role)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(float64)
}

// createCall creates an open startup call directly in the database.
func (app *testApp) createCall(t *testing.T, createdByID uint) *models.StartupCall {
	t.Helper()
	call := &models.StartupCall{Title: "Integration Call", Status: models.CallStatusOpen, CreatedByID: createdByID}
	if err := app.DB.Create(call).Error; err != nil {
		t.Fatalf("failed to create call: %v", err)
	}
	return call
}
