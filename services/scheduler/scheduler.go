package scheduler

import (
	"context"
	"errors"
	"fmt"

	"furcare/models"
	"furcare/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Create validates req, rejects it if it overlaps an active slot of the same staff on the
// same day, and persists it as an active, unbooked slot.
func (s *DefaultSlotScheduler) Create(ctx context.Context, req models.CreateSlotRequest) (*models.Slot, error) {
	if err := validateNewSlot(req); err != nil {
		return nil, err
	}

	now := s.now()
	slot := &models.Slot{
		ID:                utils.NewRef(),
		ShopID:            req.ShopID,
		StaffID:           req.StaffID,
		SlotDate:          req.SlotDate,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		DurationInMinutes: req.DurationInMinutes,
		Status:            models.SlotStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err := s.withScheduleLock(ctx, slot.StaffID, slot.SlotDate, func() error {
		if err := s.checkOverlap(ctx, *slot); err != nil {
			return err
		}
		if err := s.Repo.Create(ctx, slot); err != nil {
			return fmt.Errorf("failed to create slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Slot created",
		zap.String("slotID", slot.ID),
		zap.String("staffID", slot.StaffID),
		zap.String("date", slot.SlotDate),
		zap.String("window", slot.StartTime+"-"+slot.EndTime))
	return slot, nil
}

// Update merges patch into the stored slot. The overlap check runs only when the patch
// moves the slot, and never compares the slot with itself.
func (s *DefaultSlotScheduler) Update(ctx context.Context, id string, patch models.SlotPatch) (*models.Slot, error) {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.IsCancelled() {
		return nil, utils.NewValidationError("status", "a cancelled slot cannot be rescheduled")
	}

	merged := applyPatch(*existing, patch)
	if err := validatePatch(patch, merged); err != nil {
		return nil, err
	}
	merged.UpdatedAt = s.now()

	persist := func() error {
		err := s.Repo.Update(ctx, &merged, existing.Status)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return s.staleWrite(ctx, id)
		}
		if err != nil {
			return fmt.Errorf("failed to update slot: %w", err)
		}
		return nil
	}

	if patch.TouchesSchedule() {
		err = s.withScheduleLock(ctx, merged.StaffID, merged.SlotDate, func() error {
			if err := s.checkOverlap(ctx, merged); err != nil {
				return err
			}
			return persist()
		})
	} else {
		err = persist()
	}
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

// Cancel takes the slot out of the schedule for good. Cancelling twice is a no-op.
func (s *DefaultSlotScheduler) Cancel(ctx context.Context, id string) (*models.Slot, error) {
	slot, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slot.IsCancelled() {
		return slot, nil
	}
	if !slot.Status.CanTransitionTo(models.SlotStatusCancelled) {
		return nil, utils.NewInvalidTransitionError(string(slot.Status), string(models.SlotStatusCancelled))
	}

	now := s.now()
	err = s.Repo.SetStatus(ctx, id, models.SlotStatusCancelled, now, slot.Status)
	if errors.Is(err, mongo.ErrNoDocuments) {
		current, findErr := s.FindByID(ctx, id)
		if findErr != nil {
			return nil, findErr
		}
		if current.IsCancelled() {
			return current, nil
		}
		return nil, utils.NewConflictError(fmt.Sprintf("slot %s changed while cancelling, retry", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to cancel slot: %w", err)
	}
	slot.Status = models.SlotStatusCancelled
	slot.UpdatedAt = now
	return slot, nil
}

// Delete soft-deletes the slot; afterwards it is invisible to every query and mutation.
func (s *DefaultSlotScheduler) Delete(ctx context.Context, id string) error {
	slot, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !slot.Status.CanTransitionTo(models.SlotStatusDeleted) {
		return utils.NewInvalidTransitionError(string(slot.Status), string(models.SlotStatusDeleted))
	}

	err = s.Repo.SetStatus(ctx, id, models.SlotStatusDeleted, s.now(), models.SlotStatusActive, models.SlotStatusCancelled)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return utils.NewNotFoundError("slot", id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}

// staleWrite explains why a conditional slot write matched nothing.
func (s *DefaultSlotScheduler) staleWrite(ctx context.Context, id string) error {
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current.IsCancelled() {
		return utils.NewValidationError("status", "a cancelled slot cannot be rescheduled")
	}
	return utils.NewConflictError(fmt.Sprintf("slot %s changed while updating, retry", id))
}

func (s *DefaultSlotScheduler) checkOverlap(ctx context.Context, candidate models.Slot) error {
	existing, err := s.Repo.FindActiveByStaffAndDate(ctx, candidate.StaffID, candidate.SlotDate)
	if err != nil {
		return fmt.Errorf("failed to load staff schedule: %w", err)
	}
	if conflict := findConflict(candidate, existing); conflict != nil {
		return utils.NewConflictError(fmt.Sprintf(
			"slot %s-%s overlaps slot %s (%s-%s) for staff %s on %s",
			candidate.StartTime, candidate.EndTime,
			conflict.ID, conflict.StartTime, conflict.EndTime,
			candidate.StaffID, candidate.SlotDate,
		))
	}
	return nil
}

func (s *DefaultSlotScheduler) withScheduleLock(ctx context.Context, staffID, date string, fn func() error) error {
	if s.Locker == nil {
		return fn()
	}
	release, err := s.Locker.Acquire(ctx, lockKey(staffID, date))
	if errors.Is(err, utils.ErrLockNotAcquired) {
		return utils.NewConflictError(fmt.Sprintf("schedule for staff %s on %s is being modified, retry", staffID, date))
	}
	if err != nil {
		return fmt.Errorf("failed to lock staff schedule: %w", err)
	}
	defer release()
	return fn()
}

func applyPatch(slot models.Slot, patch models.SlotPatch) models.Slot {
	if patch.ShopID != nil {
		slot.ShopID = *patch.ShopID
	}
	if patch.StaffID != nil {
		slot.StaffID = *patch.StaffID
	}
	if patch.SlotDate != nil {
		slot.SlotDate = *patch.SlotDate
	}
	if patch.StartTime != nil {
		slot.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		slot.EndTime = *patch.EndTime
	}
	if patch.DurationInMinutes != nil {
		slot.DurationInMinutes = *patch.DurationInMinutes
	}
	return slot
}
