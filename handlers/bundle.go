package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Slot endpoints
	CreateSlotHandler             gin.HandlerFunc
	GetSlotHandler                gin.HandlerFunc
	UpdateSlotHandler             gin.HandlerFunc
	CancelSlotHandler             gin.HandlerFunc
	DeleteSlotHandler             gin.HandlerFunc
	GetShopSlotsHandler           gin.HandlerFunc
	GetBookedShopSlotsHandler     gin.HandlerFunc
	GetSlotsByDateHandler         gin.HandlerFunc
	GetAvailableStaffSlotsHandler gin.HandlerFunc

	// Appointment endpoints
	CreateAppointmentHandler       gin.HandlerFunc
	GetAppointmentHandler          gin.HandlerFunc
	GetAppointmentByNumberHandler  gin.HandlerFunc
	UpdateAppointmentStatusHandler gin.HandlerFunc
	GetShopAppointmentsHandler     gin.HandlerFunc
	GetUserAppointmentsHandler     gin.HandlerFunc

	// Notification endpoints
	GetUserNotificationsHandler gin.HandlerFunc
	GetShopNotificationsHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}
