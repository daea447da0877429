package appointment

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "furcare/database/repository/appointment"
	"furcare/models"
	"furcare/utils"

	"go.uber.org/zap"
)

// CreateAppointment books req.SlotID. The appointment, the slot's booked flag and both
// notification events commit together; a slot that is no longer bookable is a conflict.
func (s *DefaultAppointmentLifecycle) CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	now := s.now()
	bookingNumber, err := s.Numbers.Next(ctx, now)
	if err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:                utils.NewRef(),
		BookingNumber:     bookingNumber,
		UserID:            req.UserID,
		PetID:             req.PetID,
		ShopID:            req.ShopID,
		StaffID:           req.StaffID,
		ServiceID:         req.ServiceID,
		SlotID:            req.SlotID,
		SlotDetails:       req.SlotDetails,
		PaymentDetails:    req.PaymentDetails,
		AppointmentStatus: models.AppointmentPending,
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.Repo.CreateWithEvents(ctx, appt, createdEvents(appt)); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrSlotUnavailable):
			return nil, utils.NewConflictError(fmt.Sprintf("slot %s is not available for booking", req.SlotID))
		case errors.Is(err, appointmentRepo.ErrDuplicateBookingNumber):
			return nil, utils.NewConflictError(fmt.Sprintf("booking number %s already assigned, retry", bookingNumber))
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	utils.GetLogger().Info("Appointment created",
		zap.String("appointmentID", appt.ID),
		zap.String("bookingNumber", appt.BookingNumber),
		zap.String("slotID", appt.SlotID))
	return appt, nil
}

// UpdateStatus applies one transition of the status machine. Cancelling frees the slot.
func (s *DefaultAppointmentLifecycle) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := appt.AppointmentStatus
	if !from.CanTransitionTo(status) {
		return nil, utils.NewInvalidTransitionError(string(from), string(status))
	}

	appt.AppointmentStatus = status
	appt.UpdatedAt = s.now()
	releaseSlot := status == models.AppointmentCancelled

	if err := s.Repo.UpdateStatusWithEvents(ctx, appt, from, releaseSlot, statusChangedEvents(appt)); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusChanged) {
			return nil, utils.NewConflictError(fmt.Sprintf("appointment %s was modified concurrently, retry", id))
		}
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}

	utils.GetLogger().Info("Appointment status updated",
		zap.String("appointmentID", appt.ID),
		zap.String("from", string(from)),
		zap.String("to", string(status)))
	return appt, nil
}

func (s *DefaultAppointmentLifecycle) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	if !utils.IsValidRef(id) {
		return nil, utils.NewValidationError("id", "must be a 24-character hex identifier")
	}
	appt, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return nil, utils.NewNotFoundError("appointment", id)
	}
	return appt, nil
}

func (s *DefaultAppointmentLifecycle) GetByBookingNumber(ctx context.Context, bookingNumber string) (*models.Appointment, error) {
	if bookingNumber == "" {
		return nil, utils.NewValidationError("bookingNumber", "is required")
	}
	appt, err := s.Repo.FindByBookingNumber(ctx, bookingNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return nil, utils.NewNotFoundError("appointment", bookingNumber)
	}
	return appt, nil
}

func (s *DefaultAppointmentLifecycle) ListByShop(ctx context.Context, shopID string) ([]models.Appointment, error) {
	if !utils.IsValidRef(shopID) {
		return nil, utils.NewValidationError("shopId", "must be a 24-character hex identifier")
	}
	return s.Repo.FindByShop(ctx, shopID)
}

func (s *DefaultAppointmentLifecycle) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	if !utils.IsValidRef(userID) {
		return nil, utils.NewValidationError("userId", "must be a 24-character hex identifier")
	}
	return s.Repo.FindByUser(ctx, userID)
}
