package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/olangriffin/fyp-helpdesk/internal/config"
	"github.com/olangriffin/fyp-helpdesk/internal/database"
	"github.com/olangriffin/fyp-helpdesk/internal/handlers"
	"github.com/olangriffin/fyp-helpdesk/internal/logging"
	"github.com/olangriffin/fyp-helpdesk/internal/middleware"
	"github.com/olangriffin/fyp-helpdesk/internal/models"
	"github.com/olangriffin/fyp-helpdesk/internal/repository"
	"github.com/olangriffin/fyp-helpdesk/internal/security"
	"github.com/olangriffin/fyp-helpdesk/internal/services"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger, err := logging.Init(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	// Initialize services
	notificationService := services.NewNotificationService(logger)
	orgService := services.NewOrganizationService(orgRepo)
	authService := services.NewAuthService(userRepo, orgService, notificationService)
	ticketService := services.NewTicketService(ticketRepo)
	metricsService := services.NewMetricsService(userRepo, orgRepo, ticketRepo)

	// Session codec and auth middleware
	codec := security.NewSessionCodec(cfg.SecretKey, cfg.SessionExpirationMinutes)
	authMiddleware := middleware.NewAuthMiddleware(codec, cfg.SessionCookieName, cfg.SuperAdminEmail)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, codec, cfg)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	dashboardHandler := handlers.NewDashboardHandler(orgService, ticketService, metricsService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": cfg.AppName + " is running",
		})
	})

	// Public pages (session optional)
	r.GET("/", authMiddleware.OptionalAuth(), dashboardHandler.Landing)
	r.GET("/auth", authMiddleware.OptionalAuth(), dashboardHandler.AuthPortal)
	r.GET("/desk", authMiddleware.OptionalAuth(), dashboardHandler.Desk)

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/verify-email", authHandler.VerifyEmail)
		auth.POST("/resend-verification", authHandler.ResendVerification)
		auth.GET("/me", authMiddleware.RequireAuth(), authHandler.GetCurrentUser)
		auth.GET("/google/start", authHandler.GoogleStart)
		auth.GET("/google/callback", authHandler.GoogleCallback)
	}

	// Ticket routes
	tickets := r.Group("/tickets")
	{
		tickets.GET("", ticketHandler.ListTickets)
		tickets.GET("/stats", ticketHandler.TicketStats)
		tickets.POST("", ticketHandler.CreateTicket)
		tickets.GET("/:id", ticketHandler.GetTicket)
		tickets.PATCH("/:id", ticketHandler.UpdateTicket)
	}

	// Role-gated views
	r.GET("/home", authMiddleware.RequireAuth(), dashboardHandler.Home)
	r.GET("/workspace",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRoles(models.RoleRequester),
		dashboardHandler.Workspace)
	r.GET("/manager",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRoles(models.RoleITManager),
		dashboardHandler.Manager)
	r.GET("/admin",
		authMiddleware.RequireAuth(),
		authMiddleware.RequireRoles(models.RoleITManager, models.RoleSmartdeskStaff),
		dashboardHandler.Admin)

	// Super-admin views
	admin := r.Group("/admin", authMiddleware.RequireAuth(), authMiddleware.RequireSuperAdmin())
	{
		admin.GET("/overview", dashboardHandler.AdminOverview)
		admin.GET("/users", dashboardHandler.AdminUsers)
	}

	// Start server
	logger.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
