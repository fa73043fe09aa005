package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/otp"
	"fintrack/internal/services"
	"fintrack/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fintrack/internal/docs" // Import swagger docs
)

// @title           FinTrack API
// @version         1.0
// @description     FinTrack is a personal finance backend for tracking income, expenses, gold and silver investments, savings goals, and shared bills.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api

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

	// Register custom validation tags
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
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	otpGenerator := otp.ForMode(appConfig.OTPMode)
	userService := services.NewUserService(db, otpGenerator, appConfig.OTPExpiry)
	transactionService := services.NewTransactionService(db)
	investmentService := services.NewInvestmentService(db)
	goalService := services.NewGoalService(db)
	splitBillService := services.NewSplitBillService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	goalHandler := handlers.NewGoalHandler(goalService)
	splitBillHandler := handlers.NewSplitBillHandler(splitBillService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Service info and health check
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "FinTrack API",
			"version": "1.0",
			"endpoints": gin.H{
				"auth":         "/api/auth",
				"transactions": "/api/transactions",
				"investments":  "/api/investments",
				"goals":        "/api/goals",
				"splitBills":   "/api/split-bills",
				"docs":         "/swagger/index.html",
			},
		})
	})
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": appConfig.Env,
		})
	}
	router.GET("/health", healthHandler)
	router.GET("/api/health", healthHandler)

	// API group
	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/send-otp", authHandler.SendOTP)
	auth.POST("/verify-otp", authHandler.VerifyOTP)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(userService))

	// User profile
	protected.GET("/auth/me", authHandler.Me)
	protected.PUT("/auth/profile", authHandler.UpdateProfile)
	protected.POST("/auth/logout", authHandler.Logout)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Investment routes
	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoalByID)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.GET("/:id/transactions", goalHandler.GetGoalTransactions)
	goals.POST("/:id/transactions", goalHandler.CreateGoalTransaction)

	// Split bill routes
	splitBills := protected.Group("/split-bills")
	splitBills.POST("", splitBillHandler.CreateSplitBill)
	splitBills.GET("", splitBillHandler.GetSplitBills)
	splitBills.GET("/:id", splitBillHandler.GetSplitBillByID)
	splitBills.PUT("/:id", splitBillHandler.UpdateSplitBillStatus)
	// Older clients use the /status suffix for the same operation.
	splitBills.PUT("/:id/status", splitBillHandler.UpdateSplitBillStatus)
	splitBills.PUT("/:id/participants/:phone", splitBillHandler.UpdateParticipantStatus)
	splitBills.DELETE("/:id", splitBillHandler.DeleteSplitBill)

	log.Infof("Starting FinTrack backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
