package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinedash-api/internal/application/engine"
	"github.com/sangkips/dinedash-api/internal/application/service"
	"github.com/sangkips/dinedash-api/internal/config"
	"github.com/sangkips/dinedash-api/internal/domain/repository"
	"github.com/sangkips/dinedash-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/dinedash-api/internal/infrastructure/repository"
	"github.com/sangkips/dinedash-api/internal/presentation/http/handler"
	"github.com/sangkips/dinedash-api/internal/presentation/http/middleware"
	"github.com/sangkips/dinedash-api/internal/presentation/http/routes"
	"github.com/sangkips/dinedash-api/pkg/email"
	"github.com/sangkips/dinedash-api/pkg/events"
	"github.com/sangkips/dinedash-api/pkg/insights"
	"github.com/sangkips/dinedash-api/pkg/printer"
	"github.com/sangkips/dinedash-api/pkg/telemetry"
	"github.com/sangkips/dinedash-api/pkg/utils"
)

const idempotencyCleanupInterval = time.Hour

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using local time: %v", cfg.App.Timezone, err)
		loc = time.Local
	}

	// Connect to database
	db, err := database.NewDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	snapshotRepo := infraRepo.NewSnapshotRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)

	metrics := telemetry.New()

	// Load persisted state; missing or unreadable collections fall back to seed data
	store := service.NewStateStore(snapshotRepo, metrics, cfg.Billing.PersistTimeout)
	if err := store.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}

	mergePolicy, err := engine.ParseMergeStatusPolicy(cfg.Billing.MergeStatusPolicy)
	if err != nil {
		log.Fatalf("Invalid billing configuration: %v", err)
	}
	eng := engine.New(
		engine.WithServiceChargeRate(cfg.Billing.ServiceChargeRate),
		engine.WithMergePolicy(mergePolicy),
	)

	// Domain events
	publisher, err := events.NewPublisherFromConfig(cfg.Events.NATSURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to NATS, events disabled: %v", err)
		publisher = events.NoopPublisher{}
	}
	bus := service.NewBroadcaster(publisher)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})
	notifier := service.NewNotificationService(emailService, store)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.Target())
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	insightsClient := insights.NewClient(
		insights.NewProviderFromConfig(cfg.Insights.Endpoint, cfg.Insights.APIKey),
		cfg.Insights.Timeout,
	)

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryHours)

	// Initialize services
	authService := service.NewAuthService(store, jwtManager)
	orderService := service.NewOrderService(store, eng, bus, metrics, notifier)
	tableService := service.NewTableService(store, eng)
	inventoryService := service.NewInventoryService(store, eng, bus, metrics, notifier)
	menuService := service.NewMenuService(store, eng)
	hotelService := service.NewHotelService(store, eng, bus, metrics, notifier, cfg.Billing.CGSTRate)
	guestService := service.NewGuestService(store)
	staffService := service.NewStaffService(store, eng, bus, metrics, notifier)
	analyticsService := service.NewAnalyticsService(store, insightsClient, loc)
	settingsService := service.NewSettingsService(store, cfg.Billing.CGSTRate)
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, cfg.Printer.Width, store, hotelService, loc)

	if err := authService.EnsureDefaults(context.Background()); err != nil {
		log.Fatalf("Failed to initialize passcodes: %v", err)
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Order:     handler.NewOrderHandler(orderService),
		Table:     handler.NewTableHandler(tableService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Menu:      handler.NewMenuHandler(menuService),
		Hotel:     handler.NewHotelHandler(hotelService),
		Guest:     handler.NewGuestHandler(guestService),
		Staff:     handler.NewStaffHandler(staffService),
		Analytics: handler.NewAnalyticsHandler(analyticsService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(max(1, cfg.RateLimit.Duration)),
		BurstSize:         cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Metrics:         metrics,
		RateLimiter:     rateLimiter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go cleanupIdempotencyKeys(ctx, idempotencyRepo)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}

	rateLimiter.Stop()
	store.Close()
	if err := publisher.Close(); err != nil {
		log.Printf("Events shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("Server stopped")
}

// cleanupIdempotencyKeys purges expired keys until ctx is done
func cleanupIdempotencyKeys(ctx context.Context, repo repository.IdempotencyRepository) {
	ticker := time.NewTicker(idempotencyCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.DeleteExpired(ctx, now)
			if err != nil {
				log.Printf("idempotency: cleanup failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("idempotency: removed %d expired keys", n)
			}
		}
	}
}
