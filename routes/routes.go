package routes

import (
	"time"

	"furcare/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSlotRoutes registers slot scheduling endpoints.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/slots")
	{
		api.POST("", hb.CreateSlotHandler)
		api.GET("/:id", hb.GetSlotHandler)
		api.PATCH("/:id", hb.UpdateSlotHandler)
		api.POST("/:id/cancel", hb.CancelSlotHandler)
		api.DELETE("/:id", hb.DeleteSlotHandler)

		api.GET("/shop/:shopId", hb.GetShopSlotsHandler)
		api.GET("/shop/:shopId/booked", hb.GetBookedShopSlotsHandler)
		api.GET("/date/:date", hb.GetSlotsByDateHandler)
		api.GET("/staff/:staffId/available", hb.GetAvailableStaffSlotsHandler)
	}
}

// RegisterAppointmentRoutes registers appointment lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.POST("", hb.CreateAppointmentHandler)
		api.GET("/:id", hb.GetAppointmentHandler)
		api.PATCH("/:id/status", hb.UpdateAppointmentStatusHandler)
		api.GET("/number/:bookingNumber", hb.GetAppointmentByNumberHandler)
		api.GET("/shop/:shopId", hb.GetShopAppointmentsHandler)
		api.GET("/user/:userId", hb.GetUserAppointmentsHandler)
	}
}

// RegisterNotificationRoutes registers the notification inbox endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.GET("/user/:userId", hb.GetUserNotificationsHandler)
		api.GET("/shop/:shopId", hb.GetShopNotificationsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSlotRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
