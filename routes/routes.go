package routes

import (
	"time"

	"gudbro-backend/handlers"
	"gudbro-backend/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	locationHandler := &handlers.LocationHandler{DB: db}
	overrideHandler := &handlers.OverrideHandler{DB: db}
	eventHandler := &handlers.EventHandler{DB: db}
	calendarHandler := &handlers.CalendarHandler{DB: db}

	// Public calendar endpoints are unauthenticated (subscribe URLs get
	// pasted into third-party calendar apps), so rate limit them.
	calendarLimiter := middleware.NewRateLimiter(60, 1*time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		api.GET("/locations", locationHandler.GetLocations)
		api.GET("/locations/:id", locationHandler.GetLocation)
		api.GET("/locations/:id/hours", locationHandler.GetLocationHours)

		api.GET("/events", eventHandler.GetEvents)
		api.GET("/events/:id", eventHandler.GetEvent)
		api.GET("/events/:id/google-link", eventHandler.GetEventCalendarLink)

		calendar := api.Group("/calendar")
		calendar.Use(calendarLimiter.Middleware())
		{
			calendar.GET("/:locationId/schedule", calendarHandler.GetSchedule)
			calendar.GET("/:locationId/open-now", calendarHandler.GetOpenNow)
			calendar.GET("/:locationId/export.ics", calendarHandler.ExportICS)
			calendar.GET("/:locationId/subscribe.ics", calendarHandler.SubscribeICS)
			calendar.GET("/:locationId/links", calendarHandler.GetCalendarLinks)
		}
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", authHandler.GetProfile)
	}

	// Staff routes (venue staff manage their own schedule)
	staff := api.Group("/admin")
	staff.Use(middleware.AuthMiddleware())
	staff.Use(middleware.StaffMiddleware())
	{
		// Weekly hours
		staff.PUT("/locations/:id/hours", locationHandler.UpdateLocationHours)

		// Schedule override management
		staff.GET("/overrides", overrideHandler.GetOverrides)
		staff.POST("/overrides", overrideHandler.CreateOverride)
		staff.PUT("/overrides/:id", overrideHandler.UpdateOverride)
		staff.DELETE("/overrides/:id", overrideHandler.DeleteOverride)

		// Event management
		staff.GET("/events", eventHandler.ListEvents)
		staff.POST("/events", eventHandler.CreateEvent)
		staff.PUT("/events/:id", eventHandler.UpdateEvent)
		staff.DELETE("/events/:id", eventHandler.DeleteEvent)
		staff.POST("/events/:id/publish", eventHandler.PublishEvent)
		staff.POST("/events/:id/cancel", eventHandler.CancelEvent)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
