package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Hamid-2027/seatMeCombine/internal/config"
	"github.com/Hamid-2027/seatMeCombine/internal/database"
	"github.com/Hamid-2027/seatMeCombine/internal/handlers"
	"github.com/Hamid-2027/seatMeCombine/internal/middleware"
	"github.com/Hamid-2027/seatMeCombine/internal/services"
	"github.com/Hamid-2027/seatMeCombine/pkg/jwt"
	"github.com/Hamid-2027/seatMeCombine/pkg/payment"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting SeatMe Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := database.NewSQLDocumentStore(db)
	if err := store.EnsureSchema(); err != nil {
		logger.Fatalf("Failed to prepare document schema: %v", err)
	}

	// Initialize repositories
	companyRepo := database.NewCompanyRepository(store)
	routeRepo := database.NewRouteRepository(store)
	busRepo := database.NewBusRepository(store)
	layoutRepo := database.NewSeatLayoutRepository(store)
	scheduleRepo := database.NewScheduleRepository(store)
	bookingRepo := database.NewBookingRepository(store)
	profileRepo := database.NewUserProfileRepository(store)
	auditRepo := database.NewPaymentAuditRepository(store)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	layoutService := services.NewSeatLayoutService(layoutRepo)
	busService := services.NewBusService(busRepo, companyRepo, layoutService)
	scheduleService := services.NewScheduleService(scheduleRepo, busRepo, routeRepo, layoutService, logger)
	bookingService := services.NewBookingService(bookingRepo, scheduleRepo, profileRepo, routeRepo, logger)
	invoiceService := services.NewInvoiceService(bookingRepo, scheduleRepo, routeRepo)
	authService := services.NewAuthService(cfg.Admin, jwtService, logger)
	rateLimitService := services.NewRateLimitService(cfg, logger)
	defer rateLimitService.Close()

	// Select payment gateway
	var gateway payment.Gateway
	switch cfg.Payment.Gateway {
	case "jazzcash":
		gateway = payment.NewJazzCashGateway(&cfg.Payment, logger)
	default:
		gateway = payment.NewStripeGateway(cfg.Payment.StripeSecretKey, logger)
	}
	logger.Infof("Payment gateway: %s", gateway.Name())

	paymentService := services.NewPaymentService(gateway, bookingService, bookingRepo, auditRepo, logger)
	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	companyHandler := handlers.NewCompanyHandler(companyRepo)
	routeHandler := handlers.NewRouteHandler(routeRepo)
	busHandler := handlers.NewBusHandler(busService)
	layoutHandler := handlers.NewSeatLayoutHandler(layoutService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService, invoiceService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	profileHandler := handlers.NewUserProfileHandler(profileRepo)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimitMiddleware(rateLimitService))
	{
		// Authentication (public)
		v1.POST("/auth/login", authHandler.Login)

		adminOnly := middleware.AuthMiddleware(jwtService)

		// Bus companies
		companies := v1.Group("/bus-companies")
		{
			companies.GET("", companyHandler.GetAllCompanies)
			companies.GET("/:id", companyHandler.GetCompanyByID)
			companies.POST("", adminOnly, companyHandler.CreateCompany)
			companies.PUT("/:id", adminOnly, companyHandler.UpdateCompany)
			companies.DELETE("/:id", adminOnly, companyHandler.DeleteCompany)
		}

		// Routes
		busRoutes := v1.Group("/bus-routes")
		{
			busRoutes.GET("", routeHandler.GetAllRoutes)
			busRoutes.GET("/popular", routeHandler.GetPopularRoutes)
			busRoutes.GET("/:id", routeHandler.GetRouteByID)
			busRoutes.POST("", adminOnly, routeHandler.CreateRoute)
			busRoutes.PUT("/:id", adminOnly, routeHandler.UpdateRoute)
			busRoutes.DELETE("/:id", adminOnly, routeHandler.DeleteRoute)
		}

		// Buses
		buses := v1.Group("/buses")
		{
			buses.GET("", busHandler.GetAllBuses)
			buses.GET("/:id", busHandler.GetBusByID)
			buses.POST("", adminOnly, busHandler.CreateBus)
			buses.PUT("/:id", adminOnly, busHandler.UpdateBus)
			buses.DELETE("/:id", adminOnly, busHandler.DeleteBus)
		}

		// Seat layout templates
		layouts := v1.Group("/seat-layouts")
		{
			layouts.GET("", layoutHandler.GetAllLayouts)
			layouts.GET("/:id", layoutHandler.GetLayoutByID)
			layouts.POST("/validate", layoutHandler.ValidateLayout)
			layouts.POST("", adminOnly, layoutHandler.CreateLayout)
			layouts.PUT("/:id", adminOnly, layoutHandler.UpdateLayout)
			layouts.DELETE("/:id", adminOnly, layoutHandler.DeleteLayout)
		}

		// Schedules
		schedules := v1.Group("/bus-schedules")
		{
			schedules.GET("", scheduleHandler.GetAllSchedules)
			schedules.GET("/:id", scheduleHandler.GetScheduleByID)
			schedules.GET("/:id/seat-map", scheduleHandler.GetSeatMap)
			schedules.POST("", adminOnly, scheduleHandler.CreateSchedule)
			schedules.PATCH("/:id/seats", adminOnly, scheduleHandler.UpdateSeatStatuses)
			schedules.DELETE("/:id", adminOnly, scheduleHandler.DeleteSchedule)
		}

		// Bookings
		bookings := v1.Group("/bookings")
		{
			bookings.GET("", adminOnly, bookingHandler.GetAllBookings)
			bookings.GET("/:id", bookingHandler.GetBookingByID)
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.POST("/:id/confirm", adminOnly, bookingHandler.ConfirmBooking)
			bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
			bookings.POST("/:id/complete", adminOnly, bookingHandler.CompleteBooking)
			bookings.GET("/:id/invoice", bookingHandler.DownloadInvoice)
		}

		// Payments
		payments := v1.Group("/payments")
		{
			payments.POST("/checkout", paymentHandler.Checkout)
			payments.GET("/audit/:bookingId", adminOnly, paymentHandler.GetAuditTrail)
		}

		// User profiles
		profiles := v1.Group("/user-profiles")
		{
			profiles.GET("", adminOnly, profileHandler.GetAllProfiles)
			profiles.GET("/:id", profileHandler.GetProfileByID)
			profiles.POST("", profileHandler.CreateProfile)
			profiles.PUT("/:id", profileHandler.UpdateProfile)
			profiles.POST("/:id/passengers", profileHandler.AddSavedPassenger)
		profiles.DELETE("/:id/passengers/:passengerId", profileHandler.RemoveSavedPassenger)
		profiles.POST("/:id/payment-methods", profileHandler.AddSavedPaymentMethod)
		profiles.DELETE("/:id/payment-methods/:methodId", profileHandler.RemoveSavedPaymentMethod)
			profiles.DELETE("/:id", adminOnly, profileHandler.DeleteProfile)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		entry := logger.WithFields(fields)
		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
