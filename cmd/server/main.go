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
	"github.com/railyatra/booking-backend/internal/catalog"
	"github.com/railyatra/booking-backend/internal/config"
	"github.com/railyatra/booking-backend/internal/database"
	"github.com/railyatra/booking-backend/internal/events"
	"github.com/railyatra/booking-backend/internal/handlers"
	"github.com/railyatra/booking-backend/internal/middleware"
	"github.com/railyatra/booking-backend/internal/services"
	"github.com/railyatra/booking-backend/internal/session"
	"github.com/railyatra/booking-backend/internal/ticket"
	"github.com/railyatra/booking-backend/pkg/idgen"
	"github.com/railyatra/booking-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
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

	logger.Info("Starting RailYatra booking backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Search analytics and the payment audit trail are optional
	var db database.DB
	var searchLogs services.SearchLogStore
	var paymentAudits services.PaymentAuditor
	if cfg.AnalyticsEnabled() {
		logger.Info("Connecting to database...")
		db, err = database.NewConnection(cfg.Database)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		repo := database.NewSearchLogRepository(db)
		if err := repo.EnsureSchema(); err != nil {
			logger.Fatalf("Failed to prepare search_logs table: %v", err)
		}
		searchLogs = repo

		// Type assertion needed: the audit repository works on *sqlx.DB
		sqlxDB, ok := db.(*database.PostgresDB)
		if !ok {
			logger.Fatal("Failed to cast database connection to PostgresDB")
		}
		auditRepo := database.NewPaymentAuditRepository(sqlxDB.DB, logger)
		if err := auditRepo.EnsureSchema(context.Background()); err != nil {
			logger.Fatalf("Failed to prepare payment_audits table: %v", err)
		}
		paymentAudits = auditRepo
		logger.Info("Database connection established - search analytics and payment audit enabled")
	} else {
		logger.Warn("DATABASE_URL not set - search analytics and payment audit disabled")
	}

	// Expired in-memory state is purged on a schedule
	cronService := services.NewCronService(cfg.Session.CleanupSchedule, logger)
	rateLimitService := services.NewRateLimitService(services.DefaultRateLimitConfig())
	cronService.AddPurger("rate_limits", rateLimitService)

	// Session store
	var store session.Store
	switch cfg.Session.Store {
	case "redis":
		client, err := session.NewRedisClient(context.Background(), cfg.Session.RedisAddr, cfg.Session.RedisPassword, cfg.Session.RedisDB)
		if err != nil {
			logger.Fatalf("Failed to connect to redis: %v", err)
		}
		defer client.Close()
		store = session.NewRedisStore(client, cfg.Session.TTL)
		logger.WithField("addr", cfg.Session.RedisAddr).Info("Using redis session store")
	default:
		memoryStore := session.NewMemoryStore(cfg.Session.TTL)
		cronService.AddPurger("sessions", memoryStore)
		store = memoryStore
		logger.Info("Using in-memory session store")
	}

	if err := cronService.Start(); err != nil {
		logger.Fatalf("Failed to start cron service: %v", err)
	}

	// Domain events
	var publisher events.Publisher
	if cfg.EventsEnabled() {
		publisher, err = events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, logger)
		if err != nil {
			logger.Fatalf("Failed to connect to message broker: %v", err)
		}
	} else {
		publisher = events.NewNoopPublisher(logger)
	}
	defer publisher.Close()

	// Initialize services
	logger.Info("Initializing services...")
	cat := catalog.Default()
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.SessionExpiry)
	ids := idgen.NewRandomGenerator()

	searchService := services.NewSearchService(cat, searchLogs, logger)
	// Booking and checkout share one lock table so a session's steps never interleave
	sessionLocks := services.NewSessionLocks()
	bookingService := services.NewBookingService(cat, store, sessionLocks, logger)
	paymentSimulator := services.NewPaymentSimulator(ids, cfg.Payment.ProcessingDelay, logger)
	checkoutOpts := []services.CheckoutOption{services.WithIDGenerator(ids)}
	if paymentAudits != nil {
		checkoutOpts = append(checkoutOpts, services.WithPaymentAudit(paymentAudits))
	}
	checkoutService := services.NewCheckoutService(store, sessionLocks, paymentSimulator, publisher, logger, checkoutOpts...)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(jwtService, store, rateLimitService, logger)
	catalogHandler := handlers.NewCatalogHandler(cat, searchService, bookingService, logger)
	searchHandler := handlers.NewSearchHandler(searchService, jwtService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, rateLimitService, ticket.NewRenderer(cfg.Ticket.VerifyBaseURL), cfg.Payment.ConfirmDelay, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", healthCheckHandler(db))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/sessions", sessionHandler.CreateSession)

		v1.GET("/stations", catalogHandler.GetStations)
		v1.GET("/destinations", catalogHandler.GetDestinations)
		v1.GET("/classes", catalogHandler.GetClasses)
		v1.GET("/trains/:id", catalogHandler.GetTrain)
		v1.GET("/trains/:id/seats", catalogHandler.GetSeatMap)

		v1.POST("/search", searchHandler.SearchTrains)
		v1.GET("/search/popular", searchHandler.GetPopularRoutes)

		protected := v1.Group("")
		protected.Use(middleware.SessionMiddleware(jwtService, logger))
		{
			protected.DELETE("/sessions", sessionHandler.EndSession)

			booking := protected.Group("/booking")
			{
				booking.POST("", bookingHandler.StartBooking)
				booking.GET("", bookingHandler.GetBooking)
				booking.GET("/seats", bookingHandler.GetSeats)
				booking.PUT("/class", bookingHandler.ChangeClass)
				booking.PUT("/passengers", bookingHandler.ChangePassengers)
				booking.POST("/seats/:seat_id/toggle", bookingHandler.ToggleSeat)
				booking.POST("/continue", bookingHandler.Continue)
			}

			checkout := protected.Group("/checkout")
			{
				checkout.POST("", checkoutHandler.BeginCheckout)
				checkout.GET("", checkoutHandler.GetCheckout)
				checkout.PUT("/passengers", checkoutHandler.SubmitPassengers)
				checkout.POST("/back", checkoutHandler.Back)
				checkout.POST("/payment", checkoutHandler.Pay)
				checkout.GET("/payments", checkoutHandler.GetPaymentHistory)
			}

			protected.GET("/confirmation", checkoutHandler.GetConfirmation)
			protected.GET("/confirmation/eticket.pdf", checkoutHandler.DownloadETicket)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
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

	logger.Info("Stopping cron service...")
	cronService.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	// Flush pending search analytics
	searchService.Wait()

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": time.Since(start).Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if sessionID, ok := middleware.GetSessionID(c); ok {
			fields["session_id"] = sessionID
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
			return
		}

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

// healthCheckHandler returns a health check endpoint.
// db is nil when search analytics are disabled.
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "disabled"
		if db != nil {
			dbStatus = "healthy"
			if err := db.Ping(); err != nil {
				dbStatus = "unhealthy"
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":   "unhealthy",
					"database": dbStatus,
					"error":    err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  dbStatus,
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
