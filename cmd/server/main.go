package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pdam-be-svc/docs"
	"pdam-be-svc/internal/config"
	"pdam-be-svc/internal/database"
	"pdam-be-svc/internal/handler"
	"pdam-be-svc/internal/middleware"
	"pdam-be-svc/internal/repository"
	"pdam-be-svc/internal/scheduler"
	"pdam-be-svc/internal/service"
	"pdam-be-svc/pkg/logger"
)

// @title PDAM Billing Portal API
// @version 1.0
// @description RESTful API for a water-utility customer billing portal

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "PDAM Billing Portal API"
	docs.SwaggerInfo.Description = "RESTful API for a water-utility customer billing portal"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting PDAM Billing Portal...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to database")
	}
	appLogger.Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	tagihanRepo := repository.NewTagihanRepository(db.DB)
	pengaduanRepo := repository.NewPengaduanRepository(db.DB)
	logSchedulerRepo := repository.NewLogSchedullerRepository(db.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, appLogger)
	billingService := service.NewBillingService(tagihanRepo, userRepo, cfg.Billing.TarifPerMeter, cfg.Upload.Dir, appLogger)
	complaintService := service.NewComplaintService(pengaduanRepo, cfg.Upload.Dir, appLogger)
	dashboardService := service.NewDashboardService(tagihanRepo, userRepo, pengaduanRepo, appLogger)
	exportService := service.NewExportService(tagihanRepo, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler())
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())

	// Setup routes
	handler.SetupRoutes(router, authService, billingService, complaintService, dashboardService, exportService, cfg.JWT.Secret, cfg.Upload.Dir, appLogger)

	// Start the arrears scheduler
	arrearsScheduler := scheduler.NewArrearsScheduler(tagihanRepo, logSchedulerRepo, appLogger, cfg.Scheduler.ArrearsCronExpression)
	if err := arrearsScheduler.Start(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to start arrears scheduler")
	}

	// Create HTTP server
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	arrearsScheduler.Stop()

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Fatal("Server forced to shutdown")
	}

	// Close database connection
	if err := db.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}
