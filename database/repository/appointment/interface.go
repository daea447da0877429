// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"furcare/database"
	"furcare/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrSlotUnavailable means the referenced slot is gone, cancelled or already booked.
	ErrSlotUnavailable = errors.New("slot is not available for booking")
	// ErrStatusChanged means the appointment moved on between read and write.
	ErrStatusChanged = errors.New("appointment status changed concurrently")
	// ErrDuplicateBookingNumber is raised by the unique index on bookingNumber.
	ErrDuplicateBookingNumber = errors.New("booking number already assigned")
)

// AppointmentRepository persists appointments together with the slot flag and outbox
// events that must change atomically with them. A missing appointment is (nil, nil).
type AppointmentRepository interface {
	// CreateWithEvents inserts appt, marks its slot booked and records events in one transaction.
	CreateWithEvents(ctx context.Context, appt *models.Appointment, events []models.OutboxEvent) error
	// UpdateStatusWithEvents moves appt from `from` to appt.AppointmentStatus, optionally
	// releasing its slot, and records events in one transaction.
	UpdateStatusWithEvents(ctx context.Context, appt *models.Appointment, from models.AppointmentStatus, releaseSlot bool, events []models.OutboxEvent) error
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	FindByBookingNumber(ctx context.Context, bookingNumber string) (*models.Appointment, error)
	FindByShop(ctx context.Context, shopID string) ([]models.Appointment, error)
	FindByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	// CountCreatedBetween counts appointments whose createdAt lies in [start, end].
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	appointmentColl *mongo.Collection
	slotColl        *mongo.Collection
	outboxColl      *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.DB()
	return &MongoAppointmentRepo{
		appointmentColl: db.Collection(database.AppointmentsCollection),
		slotColl:        db.Collection(database.SlotsCollection),
		outboxColl:      db.Collection(database.OutboxCollection),
	}
}
