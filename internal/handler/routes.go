package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pdam-be-svc/internal/middleware"
	"pdam-be-svc/internal/models"
	"pdam-be-svc/internal/service"
	"pdam-be-svc/pkg/logger"
)

// SetupRoutes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	billingService service.BillingService,
	complaintService service.ComplaintService,
	dashboardService service.DashboardService,
	exportService service.ExportService,
	jwtSecret string,
	uploadDir string,
	logger *logger.Logger,
) {
	// Initialize handlers
	userHandler := NewUserHandler(authService, billingService, logger)
	tagihanHandler := NewTagihanHandler(billingService, logger)
	pengaduanHandler := NewPengaduanHandler(complaintService, logger)
	dashboardHandler := NewDashboardHandler(dashboardService, exportService, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded proof and complaint images
	router.Static("/uploads", uploadDir)

	// Health check
	router.GET("/health", HealthCheck)

	// Public auth routes
	router.POST("/user", userHandler.Register)
	router.POST("/user/login", userHandler.Login)

	// Guest contact form
	router.POST("/contact", pengaduanHandler.SubmitContact)

	// Complaint submission serves both guests and logged-in customers; when a
	// valid token is present the complaint is owned by that customer
	router.POST("/pengaduan", middleware.OptionalAuth(jwtSecret), pengaduanHandler.SubmitPengaduan)

	auth := middleware.Auth(jwtSecret)

	// Authenticated profile lookup
	router.GET("/user/:id", auth, userHandler.GetProfile)

	// Kasir routes (manager may use the same screens)
	staff := router.Group("/", auth, middleware.RequireRoles(models.RoleKasir, models.RoleManager))
	{
		staff.GET("/users/pelanggan", userHandler.GetPelangganUsers)
		staff.POST("/tagihan", tagihanHandler.CreateTagihan)
		staff.GET("/tagihan/verifikasi/list", tagihanHandler.GetVerificationQueue)
		staff.PUT("/tagihan/verifikasi/:id", tagihanHandler.DecideVerification)
	}

	// Customer routes; handlers additionally enforce ownership for PELANGGAN tokens
	tagihan := router.Group("/tagihan", auth)
	{
		tagihan.GET("/user/:userId", tagihanHandler.GetTagihanByUser)
		tagihan.POST("/upload/:id", middleware.RequireRoles(models.RolePelanggan), tagihanHandler.UploadBuktiBayar)
	}

	pengaduan := router.Group("/pengaduan", auth)
	{
		pengaduan.GET("/user/:id", pengaduanHandler.GetPengaduanByUser)
		pengaduan.DELETE("/:id", middleware.RequireRoles(models.RolePelanggan), pengaduanHandler.SoftDelete)
	}

	// Manager routes
	manager := router.Group("/manager", auth, middleware.RequireRoles(models.RoleManager))
	{
		manager.GET("/dashboard", dashboardHandler.GetManagerDashboard)
		manager.GET("/dashboard/export", dashboardHandler.ExportTagihan)
		manager.GET("/pengaduan", pengaduanHandler.GetInbox)
		manager.POST("/pengaduan/read", pengaduanHandler.MarkInboxRead)
		manager.PUT("/pengaduan/:id", pengaduanHandler.Reply)
		manager.DELETE("/pengaduan/:id", pengaduanHandler.HardDelete)
	}
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "PDAM Billing Portal",
	})
}
