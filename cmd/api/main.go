package main

import (
	"log"
	"os"

	_ "assetflow/api/swagger" // swagger docs
	"assetflow/internal/database"
	"assetflow/internal/handler"
	"assetflow/internal/middleware"
	"assetflow/internal/repository"
	"assetflow/internal/service"
	"assetflow/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Asset Lifecycle API
// @version         1.0
// @description     Workflow API for asset transfers, disposals, maintenance, inventory checks and budget tracking.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "postgres"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	middleware.InitPermissionMiddleware(db)

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	disposalRepo := repository.NewDisposalRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	checkRepo := repository.NewInventoryCheckRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	accountingRepo := repository.NewAccountingRepository(db)

	userService := service.NewUserService(userRepo)
	departmentService := service.NewDepartmentService(departmentRepo)
	assetService := service.NewAssetService(assetRepo)
	accountingService := service.NewAccountingService(accountingRepo)
	budgetService := service.NewBudgetService(budgetRepo, txManager)
	transferService := service.NewTransferService(transferRepo, assetRepo, assetService, txManager, wsHub)
	disposalService := service.NewDisposalService(disposalRepo, assetRepo, assetService, accountingService, txManager, wsHub)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, assetRepo, assetService, budgetService, accountingService, txManager, wsHub)
	checkService := service.NewInventoryCheckService(checkRepo, assetRepo, txManager, wsHub)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	assetHandler := handler.NewAssetHandler(assetService)
	transferHandler := handler.NewTransferHandler(transferService)
	disposalHandler := handler.NewDisposalHandler(disposalService)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService)
	checkHandler := handler.NewInventoryCheckHandler(checkService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	accountingHandler := handler.NewAccountingHandler(accountingService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	departmentHandler.RegisterRoutes(router.Group(""))
	assetHandler.RegisterRoutes(router.Group(""))
	transferHandler.RegisterRoutes(router.Group(""))
	disposalHandler.RegisterRoutes(router.Group(""))
	maintenanceHandler.RegisterRoutes(router.Group(""))
	checkHandler.RegisterRoutes(router.Group(""))
	budgetHandler.RegisterRoutes(router.Group(""))
	accountingHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
