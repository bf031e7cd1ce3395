package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/moroccotransfers/booking-backend/internal/config"
	"github.com/moroccotransfers/booking-backend/internal/database"
	"github.com/moroccotransfers/booking-backend/internal/handlers"
	"github.com/moroccotransfers/booking-backend/internal/middleware"
	"github.com/moroccotransfers/booking-backend/internal/pricing"
	"github.com/moroccotransfers/booking-backend/internal/services"
	"github.com/moroccotransfers/booking-backend/pkg/jwt"
	"github.com/moroccotransfers/booking-backend/pkg/push"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
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

	logger.Info("Starting Morocco Transfers Booking Backend")
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
	logger.Info("Database connection established")

	// Initialize repositories
	routeRepo := database.NewRouteRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	settingRepo := database.NewSettingRepository(db)
	subscriptionRepo := database.NewPushSubscriptionRepository(db)
	adminRepo := database.NewAdminUserRepository(db)
	sessionRepo := database.NewAdminSessionRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	rateLimitService := services.NewRateLimitService(
		db,
		cfg.RateLimit.MaxAttempts,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
	)
	engine := pricing.NewEngine(cfg.Pricing.HourlyRate, cfg.Pricing.HourlyOrigin)
	settingsCache := services.NewSettingsCache(settingRepo)

	pushGateway := push.NewWebPushGateway(push.WebPushConfig{
		Subject:    cfg.Push.Subject,
		PublicKey:  cfg.Push.VAPIDPublicKey,
		PrivateKey: cfg.Push.VAPIDPrivateKey,
		TTLSeconds: cfg.Push.TTLSeconds,
	})
	logger.Infof("Push gateway initialized: %s", pushGateway.GetName())
	notificationService := services.NewNotificationService(subscriptionRepo, pushGateway, logger)

	// Seed the live booking feed so the first dashboard connection gets
	// a complete snapshot.
	feed := services.NewBookingFeed()
	if bookings, err := bookingRepo.GetAll(); err != nil {
		logger.WithError(err).Warn("Failed to seed booking feed, starting empty")
	} else {
		feed.Seed(bookings)
	}

	if err := ensureBootstrapAdmin(cfg, adminRepo, logger); err != nil {
		logger.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	// Initialize and start cron service
	cronService := services.NewCronService(rateLimitService, logger)
	if err := cronService.Start(); err != nil {
		logger.Fatalf("Failed to start cron service: %v", err)
	}

	logger.Info("Services initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(jwtService, rateLimitService, adminRepo, sessionRepo, logger)
	quoteHandler := handlers.NewQuoteHandler(routeRepo, engine)
	bookingHandler := handlers.NewBookingHandler(
		bookingRepo,
		routeRepo,
		engine,
		notificationService,
		settingsCache,
		feed,
		logger,
	)
	routeHandler := handlers.NewRouteHandler(routeRepo)
	settingHandler := handlers.NewSettingHandler(settingRepo, settingsCache)
	pushHandler := handlers.NewPushSubscriptionHandler(subscriptionRepo, notificationService, logger)
	eventsHandler := handlers.NewEventsHandler(feed, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public booking-form routes
		v1.GET("/routes", quoteHandler.GetRoutes)
		v1.GET("/locations", quoteHandler.GetLocations)
		v1.POST("/quote", quoteHandler.Quote)
		v1.POST("/bookings", bookingHandler.Create)
		v1.POST("/push/subscribe", pushHandler.Subscribe)
		v1.DELETE("/push/subscribe", pushHandler.Unsubscribe)

		// Admin authentication (public)
		v1.POST("/admin/login", authHandler.Login)
		v1.POST("/admin/refresh", authHandler.Refresh)

		// Admin dashboard routes (protected)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtService))
		{
			admin.GET("/bookings", bookingHandler.GetAll)
			admin.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)
			admin.DELETE("/bookings/:id", bookingHandler.Delete)

			admin.GET("/routes", routeHandler.GetAll)
			admin.GET("/routes/:id", routeHandler.GetByID)
			admin.POST("/routes", routeHandler.Create)
			admin.PUT("/routes/:id", routeHandler.Update)
			admin.DELETE("/routes/:id", routeHandler.Delete)

			admin.GET("/sessions", authHandler.Sessions)

			admin.GET("/settings", settingHandler.GetAll)
			admin.GET("/settings/:key", settingHandler.GetByKey)
			admin.PUT("/settings/:key", settingHandler.Update)

			admin.POST("/notifications/test", pushHandler.TestNotification)

			admin.GET("/events", eventsHandler.Stream)

			admin.POST("/cron/prune-login-attempts", func(c *gin.Context) {
				cronService.RunPruneNow()
				c.JSON(http.StatusOK, gin.H{"message": "Login attempt pruning triggered"})
			})
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		// SSE connections outlive any sane write timeout.
		WriteTimeout: 0,
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

	logger.Info("Stopping cron service...")
	cronService.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// ensureBootstrapAdmin creates the first dashboard account from env
// credentials when no matching account exists yet.
func ensureBootstrapAdmin(cfg *config.Config, adminRepo *database.AdminUserRepository, logger *logrus.Logger) error {
	username := cfg.Admin.BootstrapUsername
	password := cfg.Admin.BootstrapPassword
	if username == "" || password == "" {
		return nil
	}

	if _, err := adminRepo.GetByUsername(username); err == nil {
		return nil
	} else if err != sql.ErrNoRows {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if _, err := adminRepo.Create(username, string(hash)); err != nil {
		return err
	}

	logger.WithField("username", username).Info("Bootstrap admin account created")
	return nil
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

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
		} else {
			status := c.Writer.Status()
			if status >= 500 {
				entry.Error("Request completed with server error")
			} else if status >= 400 {
				entry.Warn("Request completed with client error")
			} else {
				entry.Info("Request completed successfully")
			}
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
