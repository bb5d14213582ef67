package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinedash-api/internal/config"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	domainRepo "github.com/sangkips/dinedash-api/internal/domain/repository"
	"github.com/sangkips/dinedash-api/internal/presentation/http/handler"
	"github.com/sangkips/dinedash-api/internal/presentation/http/middleware"
	"github.com/sangkips/dinedash-api/pkg/telemetry"
	"github.com/sangkips/dinedash-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Order     *handler.OrderHandler
	Table     *handler.TableHandler
	Inventory *handler.InventoryHandler
	Menu      *handler.MenuHandler
	Hotel     *handler.HotelHandler
	Guest     *handler.GuestHandler
	Staff     *handler.StaffHandler
	Analytics *handler.AnalyticsHandler
	Settings  *handler.SettingsHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Metrics         *telemetry.Metrics
	RateLimiter     *middleware.ClientRateLimiter
}

var (
	restaurantRoles = []enum.UserRole{enum.RoleRestaurant, enum.RoleAdmin}
	roomsRoles      = []enum.UserRole{enum.RoleRooms, enum.RoleAdmin}
	adminRoles      = []enum.UserRole{enum.RoleAdmin}
)

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	if deps.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(deps.Metrics))
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = middleware.NewClientRateLimiter(rateLimiterConfig(deps.Cfg))
	}

	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		idem := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

		registerRestaurantRoutes(protected.Group("", middleware.RequireRole(restaurantRoles...)), h, idem)
		registerRoomsRoutes(protected.Group("", middleware.RequireRole(roomsRoles...)), h, idem)
		registerAdminRoutes(protected.Group("", middleware.RequireRole(adminRoles...)), h, idem)
	}

	return router
}

func rateLimiterConfig(cfg *config.Config) middleware.RateLimiterConfig {
	rl := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimit.Requests > 0 && cfg.RateLimit.Duration > 0 {
		rl.RequestsPerSecond = float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration)
		rl.BurstSize = cfg.RateLimit.Requests
	}
	rl.CleanupInterval = 5 * time.Minute
	rl.EntryTTL = 10 * time.Minute
	return rl
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.GET("/status", h.Auth.Status)
		auth.POST("/setup", h.Auth.Setup)
	}
}

func registerRestaurantRoutes(rg *gin.RouterGroup, h *Handlers, idem gin.HandlerFunc) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", idem, h.Order.Submit)
		orders.GET("/recent", h.Order.Recent)
		orders.POST("/preview", h.Order.Preview)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id/status", h.Order.UpdateStatus)
		orders.POST("/:id/print", h.Printer.PrintOrder)
	}

	kitchen := rg.Group("/kitchen")
	{
		kitchen.GET("", h.Order.KitchenQueue)
		kitchen.POST("/:id/kot", h.Printer.PrintKOT)
	}

	tables := rg.Group("/tables")
	{
		tables.GET("", h.Table.List)
		tables.GET("/:id/order", h.Table.OpenOrder)
		tables.PUT("/:id/billing", h.Table.SetBilling)
	}

	held := rg.Group("/held")
	{
		held.GET("", h.Order.ListHeld)
		held.POST("", h.Order.HoldCart)
		held.DELETE("/:id", h.Order.ResumeHeld)
	}

	inventory := rg.Group("/inventory")
	{
		inventory.GET("", h.Inventory.List)
		inventory.POST("", h.Inventory.Create)
		inventory.GET("/low-stock", h.Inventory.LowStock)
		inventory.POST("/:id/adjust", h.Inventory.Adjust)
	}

	rg.GET("/menu", h.Menu.List)
	rg.GET("/menu/:id", h.Menu.Get)

	rg.GET("/printer/status", h.Printer.GetStatus)
	rg.POST("/printer/test", h.Printer.TestPrint)
}

func registerRoomsRoutes(rg *gin.RouterGroup, h *Handlers, idem gin.HandlerFunc) {
	rooms := rg.Group("/rooms")
	{
		rooms.GET("", h.Hotel.ListRooms)
		rooms.POST("/:id/check-in", h.Hotel.CheckIn)
		rooms.POST("/:id/reserve", h.Hotel.Reserve)
		rooms.POST("/:id/clean", h.Hotel.Clean)
		rooms.PUT("/:id/maintenance", h.Hotel.SetMaintenance)
	}

	bookings := rg.Group("/bookings")
	{
		bookings.GET("", h.Hotel.ListBookings)
		bookings.PUT("/:id/status", h.Hotel.UpdateStatus)
		bookings.GET("/:id/folio", h.Hotel.Folio)
		bookings.POST("/:id/settle", idem, h.Hotel.Settle)
		bookings.POST("/:id/print", h.Printer.PrintFolio)
	}

	rg.GET("/guests", h.Guest.List)
}

func registerAdminRoutes(rg *gin.RouterGroup, h *Handlers, idem gin.HandlerFunc) {
	menu := rg.Group("/menu")
	{
		menu.POST("", h.Menu.Create)
		menu.PUT("/:id", h.Menu.Update)
		menu.DELETE("/:id", h.Menu.Delete)
	}

	staff := rg.Group("/staff")
	{
		staff.GET("", h.Staff.List)
		staff.POST("", h.Staff.Create)
		staff.GET("/payroll", h.Staff.Payroll)
		staff.GET("/payroll/export", h.Staff.ExportPayroll)
		staff.GET("/:id", h.Staff.Get)
		staff.PUT("/:id", h.Staff.Update)
		staff.DELETE("/:id", h.Staff.Delete)
		staff.POST("/:id/attendance", h.Staff.MarkAttendance)
		staff.POST("/:id/advance", h.Staff.IssueAdvance)
		staff.GET("/:id/payslip", h.Staff.Payslip)
		staff.POST("/:id/payout", idem, h.Staff.ConfirmPayout)
		staff.GET("/:id/payouts", h.Staff.Payouts)
	}

	analytics := rg.Group("/analytics")
	{
		analytics.GET("/metrics", h.Analytics.Metrics)
		analytics.GET("/insights", h.Analytics.Insights)
	}

	rg.GET("/settings", h.Settings.GetSettings)
	rg.PUT("/settings", h.Settings.UpdateSettings)
}
