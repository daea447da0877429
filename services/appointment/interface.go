package appointment

import (
	"context"
	"time"

	appointmentRepo "furcare/database/repository/appointment"
	"furcare/models"
	"furcare/services/booking"
)

// AppointmentLifecycle creates appointments against a chosen slot and walks them through
// Pending → Confirmed → Completed, with Cancelled reachable from either open state.
type AppointmentLifecycle interface {
	CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error)

	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetByBookingNumber(ctx context.Context, bookingNumber string) (*models.Appointment, error)
	ListByShop(ctx context.Context, shopID string) ([]models.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Appointment, error)
}

// DefaultAppointmentLifecycle is the production implementation. Notifications are never
// sent inline: they are written to the outbox with the appointment change and delivered
// by the relay.
type DefaultAppointmentLifecycle struct {
	Repo    appointmentRepo.AppointmentRepository
	Numbers booking.NumberGenerator
	Now     func() time.Time
}

func NewDefaultAppointmentLifecycle(repo appointmentRepo.AppointmentRepository, numbers booking.NumberGenerator) *DefaultAppointmentLifecycle {
	return &DefaultAppointmentLifecycle{Repo: repo, Numbers: numbers, Now: time.Now}
}

func (s *DefaultAppointmentLifecycle) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
