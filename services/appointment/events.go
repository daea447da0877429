package appointment

import (
	"fmt"
	"strings"

	"furcare/models"

	"github.com/google/uuid"
)

func newEvent(appt *models.Appointment, eventType string, n models.NotificationRequest) models.OutboxEvent {
	return models.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     eventType,
		Notification:  &n,
		Status:        models.OutboxPending,
		CreatedAt:     appt.UpdatedAt,
	}
}

func createdEvents(appt *models.Appointment) []models.OutboxEvent {
	toUser := models.NotificationRequest{
		UserID:       appt.UserID,
		ShopID:       appt.ShopID,
		ReceiverType: models.ReceiverUser,
		Type:         models.NotificationNewAppointment,
		Message:      fmt.Sprintf("New appointment created with booking number %s", appt.BookingNumber),
	}
	toShop := models.NotificationRequest{
		UserID:       appt.UserID,
		ShopID:       appt.ShopID,
		ReceiverType: models.ReceiverShop,
		Type:         models.NotificationNewAppointment,
		Message:      fmt.Sprintf("New appointment received — %s", appt.BookingNumber),
	}
	return []models.OutboxEvent{
		newEvent(appt, models.EventAppointmentCreated, toUser),
		newEvent(appt, models.EventAppointmentCreated, toShop),
	}
}

func statusChangedEvents(appt *models.Appointment) []models.OutboxEvent {
	toUser := models.NotificationRequest{
		UserID:       appt.UserID,
		ShopID:       appt.ShopID,
		ReceiverType: models.ReceiverUser,
		Type:         models.NotificationAppointmentStatus,
		Message: fmt.Sprintf("Your appointment %s has been %s.",
			appt.BookingNumber, strings.ToLower(string(appt.AppointmentStatus))),
	}
	return []models.OutboxEvent{newEvent(appt, models.EventAppointmentStatusChanged, toUser)}
}
