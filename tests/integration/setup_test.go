package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/otp"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

// phoneCounter hands out unique phone numbers across tests.
var phoneCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func nextPhone() string {
	return fmt.Sprintf("9%09d", phoneCounter.Add(1))
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
		&models.Transaction{},
		&models.Investment{},
		&models.Goal{},
		&models.GoalTransaction{},
		&models.SplitBill{},
		&models.Participant{},
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
	userService := services.NewUserService(db, otp.Fixed{}, 10*time.Minute)
	transactionService := services.NewTransactionService(db)
	investmentService := services.NewInvestmentService(db)
	goalService := services.NewGoalService(db)
	splitBillService := services.NewSplitBillService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	goalHandler := handlers.NewGoalHandler(goalService)
	splitBillHandler := handlers.NewSplitBillHandler(splitBillService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/send-otp", authHandler.SendOTP)
	auth.POST("/verify-otp", authHandler.VerifyOTP)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(userService))

	protected.GET("/auth/me", authHandler.Me)
	protected.PUT("/auth/profile", authHandler.UpdateProfile)
	protected.POST("/auth/logout", authHandler.Logout)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.GET("/:id/transactions", goalHandler.GetGoalTransactions)
	goals.POST("/:id/transactions", goalHandler.CreateGoalTransaction)

	splitBills := protected.Group("/split-bills")
	splitBills.POST("", splitBillHandler.CreateSplitBill)
	splitBills.GET("", splitBillHandler.GetSplitBills)
	splitBills.GET("/:id", splitBillHandler.GetSplitBillByID)
	splitBills.PUT("/:id", splitBillHandler.UpdateSplitBillStatus)
	splitBills.PUT("/:id/status", splitBillHandler.UpdateSplitBillStatus)
	splitBills.PUT("/:id/participants/:phone", splitBillHandler.UpdateParticipantStatus)
	splitBills.DELETE("/:id", splitBillHandler.DeleteSplitBill)

	return &testApp{DB: db, Router: router}
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

// loginUser runs the OTP flow for a phone number and returns the bearer token.
func (app *testApp) loginUser(t *testing.T, phoneNumber string) string {
	t.Helper()

	body := fmt.Sprintf(`{"phoneNumber":%q}`, phoneNumber)
	rec := app.request("POST", "/api/auth/send-otp", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("send-otp failed: %d %s", rec.Code, rec.Body.String())
	}

	body = fmt.Sprintf(`{"phoneNumber":%q,"otp":%q}`, phoneNumber, otp.FixedCode)
	rec = app.request("POST", "/api/auth/verify-otp", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("verify-otp failed: %d %s", rec.Code, rec.Body.String())
	}

	result := parseJSON(t, rec)
	token, _ := result["token"].(string)
	if token == "" {
		t.Fatal("expected non-empty token from verify-otp")
	}
	return token
}
